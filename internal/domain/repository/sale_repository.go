package repository

import (
	"time"

	"github.com/tu-usuario/ventario-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// GetByID devuelve (nil, nil) cuando la venta no existe.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Sale, error)
	ListAll() ([]*entity.Sale, error)
	ListByArticle(articleID string) ([]*entity.Sale, error)
	ListByDateRange(start, end time.Time) ([]*entity.Sale, error)
}
