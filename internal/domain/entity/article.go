package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del catálogo.
// Quantity es el único contador de stock: lo decrementan/restauran las ventas
// (ver application/sales) y nunca se duplica en otra tabla.
type Article struct {
	ID            string
	Title         string
	Description   string
	Photo         string // URL o data URI; puede estar vacío
	PurchasePrice decimal.Decimal
	Quantity      int
	Reference     string // código único en todo el catálogo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
