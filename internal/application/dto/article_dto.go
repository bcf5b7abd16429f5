package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest cuerpo de POST /api/articles.
type CreateArticleRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Photo         string          `json:"photo"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	Reference     string          `json:"reference"`
}

// UpdateArticleRequest cuerpo de PUT /api/articles/{id}. Solo los campos
// presentes se modifican; Quantity no se toca aquí (lo maneja el libro de ventas).
type UpdateArticleRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Photo         *string          `json:"photo"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Quantity      *int             `json:"quantity"`
	Reference     *string          `json:"reference"`
}

// ArticleResponse representación de un artículo en respuestas.
type ArticleResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Photo         string          `json:"photo,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int             `json:"quantity"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ArticleListResponse listado paginado de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
