// Package pdf implementa la exportación del reporte mensual de ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de ventas + mes                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: N° ventas / Unidades / Ingreso total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA TOP 5: Artículo | Ventas | Unidades | Ingreso        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/ventario-api/internal/application/dto"
	appstats "github.com/tu-usuario/ventario-api/internal/application/stats"
)

var _ appstats.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa stats.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF genera el PDF del reporte mensual y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, report *dto.MonthlyReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte mensual de ventas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, p := range report.TopProducts {
		m.AddRows(productRow(p))
	}
	if len(report.TopProducts) == 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(text.New("Sin ventas en este mes", props.Text{
				Size: 9, Color: colorGray, Align: align.Center, Top: 2,
			})),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte (izq) y mes (der).
func headerRow(report *dto.MonthlyReportDTO) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de ventas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Mes: "+report.Month, props.Text{
				Size: 10, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// totalsRow: KPIs del mes en tres columnas.
func totalsRow(report *dto.MonthlyReportDTO) core.Row {
	return row.New(14).Add(
		kpiCol("Ventas", fmt.Sprintf("%d", report.TotalSales)),
		kpiCol("Unidades", fmt.Sprintf("%d", report.TotalQuantity)),
		kpiCol("Ingreso total", "$ "+report.TotalRevenue.StringFixed(2)),
	)
}

func kpiCol(label, value string) core.Col {
	return col.New(4).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Size: 12, Style: fontstyle.Bold, Top: 6}),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary, Top: 2}
	return row.New(8).Add(
		col.New(6).Add(text.New("Artículo (top 5 por ingreso)", header)),
		col.New(2).Add(text.New("Ventas", header)),
		col.New(2).Add(text.New("Unidades", header)),
		col.New(2).Add(text.New("Ingreso", header)),
	)
}

func productRow(p dto.ProductStatsDTO) core.Row {
	cell := props.Text{Size: 9, Top: 2}
	return row.New(7).Add(
		col.New(6).Add(text.New(p.ArticleTitle, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.SaleCount), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.TotalQuantity), cell)),
		col.New(2).Add(text.New("$ "+p.TotalRevenue.StringFixed(2), cell)),
	)
}
