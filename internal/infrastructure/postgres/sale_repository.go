package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, article_id, article_title, quantity, unit_price, total_amount, sale_date, created_at, updated_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
// article_id NO tiene foreign key hacia articles: el borrado de un artículo
// deja las ventas con referencia colgante a propósito (título denormalizado).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta nueva.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, article_id, article_title, quantity, unit_price, total_amount, sale_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ArticleID, sale.ArticleTitle, sale.Quantity,
		sale.UnitPrice, sale.TotalAmount, sale.SaleDate, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ArticleID, &s.ArticleTitle, &s.Quantity,
		&s.UnitPrice, &s.TotalAmount, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update actualiza una venta existente.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales
		SET quantity = $2, unit_price = $3, total_amount = $4, sale_date = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Quantity, sale.UnitPrice, sale.TotalAmount, sale.SaleDate, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una venta por ID. Devuelve ErrNotFound si no había fila.
func (r *SaleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ventas por sale_date descendente con paginación.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC, created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, "list sales", limit, offset)
}

// ListAll devuelve todas las ventas (snapshot para estadísticas).
func (r *SaleRepo) ListAll() ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC, created_at DESC`
	return r.scanMany(query, "list all sales")
}

// ListByArticle ventas de un artículo, más recientes primero.
func (r *SaleRepo) ListByArticle(articleID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE article_id = $1 ORDER BY sale_date DESC, created_at DESC`
	return r.scanMany(query, "list sales by article", articleID)
}

// ListByDateRange ventas con sale_date dentro de [start, end] inclusive.
func (r *SaleRepo) ListByDateRange(start, end time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_date BETWEEN $1 AND $2 ORDER BY sale_date DESC, created_at DESC`
	return r.scanMany(query, "list sales by date range", start, end)
}

func (r *SaleRepo) scanMany(query, op string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ArticleID, &s.ArticleTitle, &s.Quantity,
			&s.UnitPrice, &s.TotalAmount, &s.SaleDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
