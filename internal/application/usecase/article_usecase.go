package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

// ArticleUseCase casos de uso CRUD para artículos del catálogo.
// Quantity solo se modifica aquí en Create y en ediciones manuales explícitas;
// las ventas lo ajustan vía application/sales dentro de una transacción.
type ArticleUseCase struct {
	repo              repository.ArticleRepository
	lowStockThreshold int
}

// NewArticleUseCase construye el caso de uso. threshold < 1 usa el valor por defecto (2).
func NewArticleUseCase(repo repository.ArticleRepository, lowStockThreshold int) *ArticleUseCase {
	if lowStockThreshold < 1 {
		lowStockThreshold = 2
	}
	return &ArticleUseCase{repo: repo, lowStockThreshold: lowStockThreshold}
}

// LowStockThreshold umbral configurado para stock bajo.
func (uc *ArticleUseCase) LowStockThreshold() int { return uc.lowStockThreshold }

// Create crea un artículo nuevo. La referencia debe ser única en el catálogo:
// se verifica antes de insertar y el constraint único de la tabla respalda la
// verificación frente a inserciones concurrentes.
func (uc *ArticleUseCase) Create(in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	if in.Title == "" || in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.LessThan(decimal.Zero) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByReference(in.Reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateReference
	}
	now := time.Now()
	article := &entity.Article{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Description:   in.Description,
		Photo:         in.Photo,
		PurchasePrice: in.PurchasePrice,
		Quantity:      in.Quantity,
		Reference:     in.Reference,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (uc *ArticleUseCase) GetByID(id string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	return toArticleResponse(article), nil
}

// GetByReference busca un artículo por su código de referencia (flujo del
// escáner de códigos de barras: el cliente decodifica y consulta aquí).
func (uc *ArticleUseCase) GetByReference(reference string) (*dto.ArticleResponse, error) {
	if reference == "" {
		return nil, domain.ErrInvalidInput
	}
	article, err := uc.repo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	return toArticleResponse(article), nil
}

// Update actualiza parcialmente un artículo. Si cambia la referencia se
// re-verifica la unicidad. Devuelve (nil, nil) si el artículo no existe.
func (uc *ArticleUseCase) Update(id string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, nil
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrInvalidInput
		}
		article.Title = *in.Title
	}
	if in.Description != nil {
		article.Description = *in.Description
	}
	if in.Photo != nil {
		article.Photo = *in.Photo
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		article.PurchasePrice = *in.PurchasePrice
	}
	if in.Quantity != nil {
		// Ajuste manual de stock (corrección de inventario).
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		article.Quantity = *in.Quantity
	}
	if in.Reference != nil && *in.Reference != article.Reference {
		if *in.Reference == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByReference(*in.Reference)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicateReference
		}
		article.Reference = *in.Reference
	}
	article.UpdatedAt = time.Now()
	if err := uc.repo.Update(article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List lista artículos ordenados por created_at descendente, con paginación.
func (uc *ArticleUseCase) List(limit, offset int) (*dto.ArticleListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLowStock artículos con quantity < threshold, ascendente por cantidad.
// threshold <= 0 usa el umbral configurado.
func (uc *ArticleUseCase) ListLowStock(threshold int) ([]dto.ArticleResponse, error) {
	if threshold <= 0 {
		threshold = uc.lowStockThreshold
	}
	list, err := uc.repo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return items, nil
}

// Search busca por título, descripción o referencia (case-insensitive).
func (uc *ArticleUseCase) Search(term string, limit int) ([]dto.ArticleResponse, error) {
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := uc.repo.Search(term, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return items, nil
}

// Delete elimina un artículo. Las ventas que lo referencian NO se tocan:
// conservan el título denormalizado y su article_id pasa a ser best-effort.
func (uc *ArticleUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Photo:         a.Photo,
		PurchasePrice: a.PurchasePrice,
		Quantity:      a.Quantity,
		Reference:     a.Reference,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
