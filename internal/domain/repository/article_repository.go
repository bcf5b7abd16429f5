package repository

import "github.com/tu-usuario/ventario-api/internal/domain/entity"

// ArticleRepository define el puerto de persistencia para Article (DIP).
// GetByID y variantes devuelven (nil, nil) cuando el artículo no existe.
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro de una tx.
	GetByIDForUpdate(id string) (*entity.Article, error)
	GetByReference(reference string) (*entity.Article, error)
	Update(article *entity.Article) error
	// UpdateQuantity ajusta solo el contador de stock (lo usa el libro de ventas).
	UpdateQuantity(id string, quantity int) error
	List(limit, offset int) ([]*entity.Article, error)
	ListAll() ([]*entity.Article, error)
	ListLowStock(threshold int) ([]*entity.Article, error)
	Search(term string, limit int) ([]*entity.Article, error)
	Delete(id string) error
}
