package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/application/usecase"
	"github.com/tu-usuario/ventario-api/internal/domain"
)

// ArticleHandler maneja las peticiones HTTP para artículos (protegido).
type ArticleHandler struct {
	uc *usecase.ArticleUseCase
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Title == "" || in.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "title y reference son requeridos"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return articleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_ID", "id es requerido"))
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return articleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "artículo no encontrado"))
	}
	return c.JSON(dto.OK(out))
}

// GetByReference godoc
// @Summary      Obtener artículo por referencia
// @Description  Consulta por código de referencia (flujo del escáner de código de barras).
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        reference  path  string  true  "Código de referencia"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/articles/reference/{reference} [get]
func (h *ArticleHandler) GetByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")
	out, err := h.uc.GetByReference(reference)
	if err != nil {
		return articleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "artículo no encontrado"))
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar artículos
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.Envelope
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// ListLowStock godoc
// @Summary      Artículos con stock bajo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral (default configurado, 2)"
// @Success      200  {object}  dto.Envelope
// @Router       /api/articles/low-stock [get]
func (h *ArticleHandler) ListLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	out, err := h.uc.ListLowStock(threshold)
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Search godoc
// @Summary      Buscar artículos
// @Description  Busca por título, descripción o referencia (case-insensitive).
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "Término de búsqueda"
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.Envelope
// @Router       /api/articles/search [get]
func (h *ArticleHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "el parámetro q es requerido"))
	}
	out, err := h.uc.Search(term, c.QueryInt("limit", 20))
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del artículo"
// @Param        body  body  dto.UpdateArticleRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_ID", "id es requerido"))
	}
	var in dto.UpdateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return articleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "artículo no encontrado"))
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar artículo
// @Description  Las ventas que referencian el artículo se conservan con su título denormalizado.
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_ID", "id es requerido"))
	}
	if err := h.uc.Delete(id); err != nil {
		return articleError(c, err)
	}
	return c.JSON(dto.OKMessage("artículo eliminado"))
}

// articleError mapea errores de dominio a códigos HTTP.
func articleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrDuplicateReference):
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("DUPLICATE_REFERENCE", "la referencia ya existe"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "artículo no encontrado"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", err.Error()))
	}
}

// pageParams extrae limit/offset con los defaults de la API.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
