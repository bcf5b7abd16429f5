package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada contra un artículo del catálogo.
// ArticleTitle es una copia del título al momento de la venta (no sigue renombres);
// ArticleID es una referencia best-effort: si el artículo se borra, la venta queda
// con la referencia colgante y conserva el título denormalizado.
type Sale struct {
	ID           string
	ArticleID    string
	ArticleTitle string
	Quantity     int // cantidad vendida, siempre > 0
	UnitPrice    decimal.Decimal
	TotalAmount  decimal.Decimal
	SaleDate     time.Time // fecha de la transacción; puede diferir de CreatedAt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
