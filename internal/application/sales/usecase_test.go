package sales_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/application/sales"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memArticleRepo struct {
	articles map[string]*entity.Article
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{articles: make(map[string]*entity.Article)}
}

func (r *memArticleRepo) Create(a *entity.Article) error {
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *memArticleRepo) GetByID(id string) (*entity.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memArticleRepo) GetByIDForUpdate(id string) (*entity.Article, error) {
	return r.GetByID(id)
}

func (r *memArticleRepo) GetByReference(reference string) (*entity.Article, error) {
	for _, a := range r.articles {
		if a.Reference == reference {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memArticleRepo) Update(a *entity.Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.articles[a.ID] = &cp
	return nil
}

func (r *memArticleRepo) UpdateQuantity(id string, quantity int) error {
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Quantity = quantity
	return nil
}

func (r *memArticleRepo) List(limit, offset int) ([]*entity.Article, error) { return r.ListAll() }

func (r *memArticleRepo) ListAll() ([]*entity.Article, error) {
	out := make([]*entity.Article, 0, len(r.articles))
	for _, a := range r.articles {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memArticleRepo) ListLowStock(threshold int) ([]*entity.Article, error) {
	all, _ := r.ListAll()
	out := all[:0]
	for _, a := range all {
		if a.Quantity < threshold {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memArticleRepo) Search(term string, limit int) ([]*entity.Article, error) {
	all, _ := r.ListAll()
	term = strings.ToLower(term)
	out := all[:0]
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Title), term) ||
			strings.Contains(strings.ToLower(a.Description), term) ||
			strings.Contains(strings.ToLower(a.Reference), term) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memArticleRepo) Delete(id string) error {
	if _, ok := r.articles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

type memSaleRepo struct {
	sales map[string]*entity.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *memSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSaleRepo) Update(s *entity.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *memSaleRepo) Delete(id string) error {
	if _, ok := r.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return r.ListAll() }

func (r *memSaleRepo) ListAll() ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memSaleRepo) ListByArticle(articleID string) ([]*entity.Sale, error) {
	all, _ := r.ListAll()
	out := all[:0]
	for _, s := range all {
		if s.ArticleID == articleID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListByDateRange(start, end time.Time) ([]*entity.Sale, error) {
	all, _ := r.ListAll()
	out := all[:0]
	for _, s := range all {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

// memTxRunner emula la atomicidad de la transacción: toma un snapshot de los
// dos repos antes de ejecutar fn y lo restaura si fn devuelve error.
type memTxRunner struct {
	articles *memArticleRepo
	sales    *memSaleRepo
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	articleRepo repository.ArticleRepository,
	saleRepo repository.SaleRepository,
) error) error {
	articlesSnap := make(map[string]*entity.Article, len(tx.articles.articles))
	for k, v := range tx.articles.articles {
		cp := *v
		articlesSnap[k] = &cp
	}
	salesSnap := make(map[string]*entity.Sale, len(tx.sales.sales))
	for k, v := range tx.sales.sales {
		cp := *v
		salesSnap[k] = &cp
	}
	if err := fn(tx.articles, tx.sales); err != nil {
		tx.articles.articles = articlesSnap
		tx.sales.sales = salesSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newFixture(t *testing.T) (*sales.SaleUseCase, *memArticleRepo, *memSaleRepo) {
	t.Helper()
	articles := newMemArticleRepo()
	salesRepo := newMemSaleRepo()
	uc := sales.NewSaleUseCase(&memTxRunner{articles: articles, sales: salesRepo}, salesRepo)
	return uc, articles, salesRepo
}

func seedArticle(t *testing.T, repo *memArticleRepo, id string, quantity int) *entity.Article {
	t.Helper()
	a := &entity.Article{
		ID:            id,
		Title:         "Portátil HP Pavilion",
		PurchasePrice: decimal.NewFromInt(3500),
		Quantity:      quantity,
		Reference:     "REF-" + id,
	}
	require.NoError(t, repo.Create(a))
	return a
}

func stockOf(t *testing.T, repo *memArticleRepo, id string) int {
	t.Helper()
	a, err := repo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStock(t *testing.T) {
	uc, articles, salesRepo := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 7, stockOf(t, articles, "art-1"), "vender 3 de 10 debe dejar 7")
	assert.Equal(t, "Portátil HP Pavilion", out.ArticleTitle,
		"el título se denormaliza en el momento de la venta")
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromInt(3000)),
		"unit_price ausente se deriva de total/cantidad: esperado 3000, fue %s", out.UnitPrice)

	stored, err := salesRepo.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored, "la venta debe quedar persistida")
}

func TestCreateSale_StockInsuficiente_NoTocaNada(t *testing.T) {
	uc, articles, salesRepo := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    20,
		TotalAmount: decimal.NewFromInt(60000),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible (10)")
	assert.Contains(t, err.Error(), "solicitada (20)")

	assert.Equal(t, 10, stockOf(t, articles, "art-1"), "el stock debe quedar intacto")
	all, _ := salesRepo.ListAll()
	assert.Empty(t, all, "no debe quedar ninguna venta registrada")
}

func TestCreateSale_AgotaStockExacto(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 5)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    5,
		TotalAmount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err, "vender exactamente el stock disponible es válido")
	assert.Equal(t, 0, stockOf(t, articles, "art-1"))
}

func TestCreateSale_ArticuloInexistente(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "no-existe",
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_Validaciones(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"cantidad cero", dto.CreateSaleRequest{ArticleID: "art-1", Quantity: 0, TotalAmount: decimal.NewFromInt(100)}},
		{"cantidad negativa", dto.CreateSaleRequest{ArticleID: "art-1", Quantity: -2, TotalAmount: decimal.NewFromInt(100)}},
		{"total negativo", dto.CreateSaleRequest{ArticleID: "art-1", Quantity: 1, TotalAmount: decimal.NewFromInt(-5)}},
		{"sin artículo", dto.CreateSaleRequest{Quantity: 1, TotalAmount: decimal.NewFromInt(100)}},
		{"fecha malformada", dto.CreateSaleRequest{ArticleID: "art-1", Quantity: 1, TotalAmount: decimal.NewFromInt(100), SaleDate: "15/01/2024"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, stockOf(t, articles, "art-1"), "ninguna validación fallida debe tocar el stock")
}

func TestCreateSale_FechaExplicita(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(4000),
		SaleDate:    "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 2024, out.SaleDate.Year())
	assert.Equal(t, time.January, out.SaleDate.Month())
	assert.Equal(t, 15, out.SaleDate.Day())
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateSale — ajuste de stock por delta
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_AumentarCantidadDescuentaStock(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	require.Equal(t, 7, stockOf(t, articles, "art-1"))

	newQty := 5
	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Quantity)
	assert.Equal(t, 5, stockOf(t, articles, "art-1"), "pasar la venta de 3 a 5 descuenta 2 más")
}

func TestUpdateSale_ReducirCantidadRestauraStock(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    5,
		TotalAmount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	newQty := 2
	_, err = uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 8, stockOf(t, articles, "art-1"), "pasar la venta de 5 a 2 devuelve 3 al stock")
}

func TestUpdateSale_DeltaExcedeStock_RechazaTodo(t *testing.T) {
	uc, articles, salesRepo := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)

	newQty := 50
	newTotal := decimal.NewFromInt(150000)
	_, err = uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{
		Quantity:    &newQty,
		TotalAmount: &newTotal,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 7, stockOf(t, articles, "art-1"), "el stock no debe moverse")
	stored, _ := salesRepo.GetByID(created.ID)
	assert.Equal(t, 3, stored.Quantity, "la venta conserva su cantidad original")
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(9000)),
		"ningún campo de la venta debe cambiar si el ajuste falla")
}

func TestUpdateSale_ArticuloBorrado_OmiteAjuste(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	require.NoError(t, articles.Delete("art-1"))

	newQty := 5
	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{Quantity: &newQty})
	require.NoError(t, err, "con el artículo borrado la venta se actualiza igual")
	assert.Equal(t, 5, out.Quantity)
}

func TestUpdateSale_SoloCamposPresentes(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)

	newTotal := decimal.NewFromInt(9500)
	out, err := uc.UpdateSale(context.Background(), created.ID, dto.UpdateSaleRequest{TotalAmount: &newTotal})
	require.NoError(t, err)

	assert.Equal(t, 3, out.Quantity, "la cantidad no cambia si no viene en el request")
	assert.True(t, out.TotalAmount.Equal(newTotal))
	assert.Equal(t, 7, stockOf(t, articles, "art-1"), "sin cambio de cantidad no hay ajuste de stock")
}

func TestUpdateSale_VentaInexistente(t *testing.T) {
	uc, _, _ := newFixture(t)
	newQty := 2
	_, err := uc.UpdateSale(context.Background(), "no-existe", dto.UpdateSaleRequest{Quantity: &newQty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSale — restauración de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_RestauraStock(t *testing.T) {
	uc, articles, salesRepo := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	require.Equal(t, 7, stockOf(t, articles, "art-1"))

	require.NoError(t, uc.DeleteSale(context.Background(), created.ID))

	assert.Equal(t, 10, stockOf(t, articles, "art-1"), "borrar la venta devuelve las 3 unidades")
	stored, _ := salesRepo.GetByID(created.ID)
	assert.Nil(t, stored)
}

func TestDeleteSale_DobleDelete_SegundoFalla(t *testing.T) {
	uc, articles, _ := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSale(context.Background(), created.ID))
	err = uc.DeleteSale(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el segundo delete no debe restaurar stock otra vez")
	assert.Equal(t, 10, stockOf(t, articles, "art-1"))
}

func TestDeleteSale_ArticuloBorrado_OmiteRestauracion(t *testing.T) {
	uc, articles, salesRepo := newFixture(t)
	seedArticle(t, articles, "art-1", 10)

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ArticleID:   "art-1",
		Quantity:    3,
		TotalAmount: decimal.NewFromInt(9000),
	})
	require.NoError(t, err)
	require.NoError(t, articles.Delete("art-1"))

	require.NoError(t, uc.DeleteSale(context.Background(), created.ID),
		"borrar la venta de un artículo ya inexistente no es error")
	stored, _ := salesRepo.GetByID(created.ID)
	assert.Nil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListByDateRange_RangoInvertido(t *testing.T) {
	uc, _, _ := newFixture(t)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.ListByDateRange(start, end)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_Inexistente_NilSinError(t *testing.T) {
	uc, _, _ := newFixture(t)
	out, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}
