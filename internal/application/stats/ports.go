package stats

import (
	"context"

	"github.com/tu-usuario/ventario-api/internal/application/dto"
)

// ReportPDFGenerator genera la representación PDF de un reporte mensual.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *dto.MonthlyReportDTO) ([]byte, error)
}
