package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, title, description, photo, purchase_price, quantity, reference, created_at, updated_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL (usable con pool o tx).
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un artículo nuevo. El constraint único sobre reference
// respalda la verificación de la capa de aplicación (23505 -> ErrDuplicateReference).
func (r *ArticleRepo) Create(article *entity.Article) error {
	query := `
		INSERT INTO articles (id, title, description, photo, purchase_price, quantity, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		article.ID, article.Title, article.Description, article.Photo,
		article.PurchasePrice, article.Quantity, article.Reference,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID. Devuelve (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get article")
}

// GetByIDForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción (TxRunner).
func (r *ArticleRepo) GetByIDForUpdate(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get article for update")
}

// GetByReference obtiene un artículo por su código de referencia.
func (r *ArticleRepo) GetByReference(reference string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE reference = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, reference), "get article by reference")
}

// Update actualiza los campos editables del artículo, incluido quantity
// (ajustes manuales). Los ajustes por ventas usan UpdateQuantity dentro de una tx.
func (r *ArticleRepo) Update(article *entity.Article) error {
	query := `
		UPDATE articles
		SET title = $2, description = $3, photo = $4, purchase_price = $5, quantity = $6, reference = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		article.ID, article.Title, article.Description, article.Photo,
		article.PurchasePrice, article.Quantity, article.Reference, article.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("update article: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity ajusta solo el contador de stock (usado por el libro de ventas).
func (r *ArticleRepo) UpdateQuantity(id string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE articles SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update article quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos por created_at descendente con paginación.
func (r *ArticleRepo) List(limit, offset int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, "list articles", limit, offset)
}

// ListAll devuelve el catálogo completo (snapshot para estadísticas).
func (r *ArticleRepo) ListAll() ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC`
	return r.scanMany(query, "list all articles")
}

// ListLowStock artículos con quantity < threshold, ascendente por cantidad.
func (r *ArticleRepo) ListLowStock(threshold int) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE quantity < $1 ORDER BY quantity ASC, created_at DESC`
	return r.scanMany(query, "list low stock", threshold)
}

// Search busca por título, descripción o referencia (ILIKE, case-insensitive).
func (r *ArticleRepo) Search(term string, limit int) ([]*entity.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE title ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		   OR reference ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`
	return r.scanMany(query, "search articles", term, limit)
}

// Delete elimina un artículo por ID. Devuelve ErrNotFound si no había fila.
// No hay guard referencial: las ventas existentes conservan su article_id colgante.
func (r *ArticleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepo) scanOne(row pgx.Row, op string) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Photo, &a.PurchasePrice,
		&a.Quantity, &a.Reference, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *ArticleRepo) scanMany(query, op string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Photo, &a.PurchasePrice,
			&a.Quantity, &a.Reference, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
