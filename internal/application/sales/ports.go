package sales

import (
	"context"

	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la inserción/borrado de la venta
// y el ajuste de stock del artículo se confirmen o reviertan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		articleRepo repository.ArticleRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
