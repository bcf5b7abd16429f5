package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/application/sales"
	"github.com/tu-usuario/ventario-api/internal/domain"
)

// SaleHandler maneja las peticiones HTTP del libro de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Inserta la venta y descuenta el stock del artículo en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.CreateSale(c.Context(), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "venta no encontrada"))
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.Envelope
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListByArticle godoc
// @Summary      Ventas de un artículo
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        articleId  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Envelope
// @Router       /api/sales/article/{articleId} [get]
func (h *SaleHandler) ListByArticle(c *fiber.Ctx) error {
	out, err := h.uc.ListByArticle(c.Params("articleId"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListByDateRange godoc
// @Summary      Ventas por rango de fechas
// @Description  Rango inclusivo [start, end], formato YYYY-MM-DD.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Fecha inicial (YYYY-MM-DD)"
// @Param        end    query  string  true  "Fecha final (YYYY-MM-DD)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Router       /api/sales/range [get]
func (h *SaleHandler) ListByDateRange(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "start inválido, formato YYYY-MM-DD"))
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "end inválido, formato YYYY-MM-DD"))
	}
	// end cubre el día completo
	end = end.Add(24*time.Hour - time.Nanosecond)
	out, err := h.uc.ListByDateRange(start, end)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar venta
// @Description  Si cambia la cantidad, el stock del artículo se ajusta en la misma transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.UpdateSale(c.Context(), c.Params("id"), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Restaura la cantidad vendida al stock del artículo antes de borrar.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSale(c.Context(), c.Params("id")); err != nil {
		return saleError(c, err)
	}
	return c.JSON(dto.OKMessage("venta eliminada"))
}

// saleError mapea errores de dominio a códigos HTTP.
func saleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("INSUFFICIENT_STOCK", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", err.Error()))
	}
}
