package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/application/stats"
	"github.com/tu-usuario/ventario-api/internal/domain"
)

// StatsHandler maneja las peticiones de estadísticas y reportes (protegido).
type StatsHandler struct {
	uc    *stats.StatsUseCase
	pdfUC *stats.ReportPDFUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.StatsUseCase, pdfUC *stats.ReportPDFUseCase) *StatsHandler {
	return &StatsHandler{uc: uc, pdfUC: pdfUC}
}

// ArticleStats godoc
// @Summary      Estadísticas del catálogo
// @Description  Total de artículos, valor del inventario, stock bajo y precio promedio.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/articles/stats [get]
func (h *StatsHandler) ArticleStats(c *fiber.Ctx) error {
	out, err := h.uc.ArticleStats()
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// SalesStats godoc
// @Summary      Estadísticas de ventas
// @Description  Agregados globales más la ventana del mes calendario en curso.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/sales/stats [get]
func (h *StatsHandler) SalesStats(c *fiber.Ctx) error {
	out, err := h.uc.SalesStats()
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// MonthlyReport godoc
// @Summary      Reporte mensual
// @Description  Totales y top 5 de productos por ingreso para un mes concreto.
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        year   path  int  true  "Año (p. ej. 2024)"
// @Param        month  path  int  true  "Mes (1-12)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales/report/{year}/{month} [get]
func (h *StatsHandler) MonthlyReport(c *fiber.Ctx) error {
	year, month, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", err.Error()))
	}
	out, err := h.uc.MonthlyReport(month, year)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// MonthlyReportPDF godoc
// @Summary      Reporte mensual en PDF
// @Tags         stats
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   path  int  true  "Año (p. ej. 2024)"
// @Param        month  path  int  true  "Mes (1-12)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales/report/{year}/{month}/pdf [get]
func (h *StatsHandler) MonthlyReportPDF(c *fiber.Ctx) error {
	year, month, err := reportParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", err.Error()))
	}
	pdf, filename, err := h.pdfUC.Generate(c.Context(), month, year)
	if err != nil {
		return statsError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// reportParams parsea y valida year/month de la ruta.
func reportParams(c *fiber.Ctx) (year, month int, err error) {
	year, err = strconv.Atoi(c.Params("year"))
	if err != nil || year < 1 {
		return 0, 0, errors.New("year inválido")
	}
	month, err = strconv.Atoi(c.Params("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("month inválido, debe estar entre 1 y 12")
	}
	return year, month, nil
}

func statsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "datos inválidos"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", err.Error()))
}
