package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest cuerpo de POST /api/sales.
// SaleDate acepta "2006-01-02" o RFC3339; vacío = ahora.
// UnitPrice es opcional: si falta se deriva de TotalAmount / Quantity.
type CreateSaleRequest struct {
	ArticleID   string           `json:"article_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	SaleDate    string           `json:"sale_date"`
}

// UpdateSaleRequest cuerpo de PUT /api/sales/{id}. Solo los campos presentes
// se modifican; un cambio de Quantity ajusta el stock del artículo.
type UpdateSaleRequest struct {
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
	SaleDate    *string          `json:"sale_date"`
}

// SaleResponse representación de una venta en respuestas.
type SaleResponse struct {
	ID           string          `json:"id"`
	ArticleID    string          `json:"article_id"`
	ArticleTitle string          `json:"article_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SaleDate     time.Time       `json:"sale_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
