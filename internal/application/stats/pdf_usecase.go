package stats

import (
	"context"
	"fmt"
)

// ReportPDFUseCase exporta el reporte mensual como PDF descargable.
type ReportPDFUseCase struct {
	stats *StatsUseCase
	gen   ReportPDFGenerator
}

// NewReportPDFUseCase construye el caso de uso.
func NewReportPDFUseCase(stats *StatsUseCase, gen ReportPDFGenerator) *ReportPDFUseCase {
	return &ReportPDFUseCase{stats: stats, gen: gen}
}

// Generate calcula el reporte del mes y lo renderiza. Devuelve los bytes del
// PDF y el nombre de archivo sugerido.
func (uc *ReportPDFUseCase) Generate(ctx context.Context, month, year int) ([]byte, string, error) {
	report, err := uc.stats.MonthlyReport(month, year)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.gen.GenerateReportPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte %s: %w", report.Month, err)
	}
	return pdf, fmt.Sprintf("reporte-ventas-%s.pdf", report.Month), nil
}
