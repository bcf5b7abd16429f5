package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs — solo los métodos que el motor de estadísticas consume
// ──────────────────────────────────────────────────────────────────────────────

type stubArticleRepo struct {
	repository.ArticleRepository
	articles []*entity.Article
}

func (r *stubArticleRepo) ListAll() ([]*entity.Article, error) { return r.articles, nil }

type stubSaleRepo struct {
	repository.SaleRepository
	sales []*entity.Sale
}

func (r *stubSaleRepo) ListAll() ([]*entity.Sale, error) { return r.sales, nil }

func (r *stubSaleRepo) ListByDateRange(start, end time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func article(id string, price int64, qty int) *entity.Article {
	return &entity.Article{
		ID:            id,
		Title:         "Artículo " + id,
		PurchasePrice: decimal.NewFromInt(price),
		Quantity:      qty,
		Reference:     "REF-" + id,
	}
}

func sale(articleID string, qty int, total int64, date time.Time) *entity.Sale {
	return &entity.Sale{
		ID:           articleID + date.Format("-20060102150405.000000000"),
		ArticleID:    articleID,
		ArticleTitle: "Artículo " + articleID,
		Quantity:     qty,
		TotalAmount:  decimal.NewFromInt(total),
		SaleDate:     date,
	}
}

func newStats(articles []*entity.Article, sales []*entity.Sale) *StatsUseCase {
	return NewStatsUseCase(&stubArticleRepo{articles: articles}, &stubSaleRepo{sales: sales}, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// ArticleStats
// ──────────────────────────────────────────────────────────────────────────────

func TestArticleStats_Agregados(t *testing.T) {
	uc := newStats([]*entity.Article{
		article("a", 3500, 10), // valor 35000
		article("b", 1200, 1),  // valor 1200, stock bajo
		article("c", 500, 0),   // valor 0, stock bajo
	}, nil)

	out, err := uc.ArticleStats()
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalArticles)
	assert.Equal(t, 11, out.TotalQuantity)
	assert.True(t, out.TotalInventoryValue.Equal(decimal.NewFromInt(36200)),
		"valor total esperado 36200, fue %s", out.TotalInventoryValue)
	assert.Equal(t, 2, out.LowStockCount, "quantity < 2 cuenta como stock bajo")
	// 36200 / 11 unidades = 3290.91
	assert.True(t, out.AveragePrice.Equal(decimal.RequireFromString("3290.91")),
		"promedio esperado 3290.91, fue %s", out.AveragePrice)
}

func TestArticleStats_CatalogoVacio(t *testing.T) {
	uc := newStats(nil, nil)

	out, err := uc.ArticleStats()
	require.NoError(t, err)

	assert.Equal(t, 0, out.TotalArticles)
	assert.True(t, out.TotalInventoryValue.IsZero())
	assert.True(t, out.AveragePrice.IsZero(), "sin unidades el promedio es 0, no división por cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// SalesStats — ventana del mes calendario
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesStats_VentanaMesCalendario(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	uc := newStats(nil, []*entity.Sale{
		sale("a", 2, 8000, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),   // día 1 00:00, incluida
		sale("b", 1, 3200, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),  // incluida
		sale("c", 5, 1000, time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)), // mes anterior, fuera
	})

	out, err := uc.salesStatsAt(now)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalSales, "los agregados globales cubren todas las ventas")
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(12200)))
	assert.Equal(t, 8, out.TotalQuantity)
	// 12200 / 3 ventas = 4066.67
	assert.True(t, out.AverageSalePrice.Equal(decimal.RequireFromString("4066.67")),
		"promedio esperado 4066.67, fue %s", out.AverageSalePrice)

	assert.Equal(t, 2, out.MonthlySales, "la ventana es el mes calendario, no los últimos 30 días")
	assert.True(t, out.MonthlyRevenue.Equal(decimal.NewFromInt(11200)))
	assert.Equal(t, 2, out.MonthlyProductCount)
}

func TestSalesStats_ProductosDestacados(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	mar := func(day int) time.Time { return time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC) }
	uc := newStats(nil, []*entity.Sale{
		sale("a", 5, 1000, mar(2)), // a: 5 uds, 1000
		sale("b", 2, 9000, mar(3)), // b: 2 uds, 9000
		sale("c", 3, 4000, mar(4)), // c: 3 uds, 4000
	})

	out, err := uc.salesStatsAt(now)
	require.NoError(t, err)
	require.NotNil(t, out.MostSoldProduct)
	require.NotNil(t, out.LeastSoldProduct)
	require.NotNil(t, out.HighestRevenueProduct)

	assert.Equal(t, "a", out.MostSoldProduct.ArticleID, "más vendido por unidades")
	assert.Equal(t, "b", out.LeastSoldProduct.ArticleID, "menos vendido por unidades")
	assert.Equal(t, "b", out.HighestRevenueProduct.ArticleID, "mayor ingreso")
}

func TestSalesStats_EmpateResueltoPorArticleID(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	mar := func(day int) time.Time { return time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC) }
	uc := newStats(nil, []*entity.Sale{
		sale("zzz", 4, 5000, mar(2)),
		sale("aaa", 4, 5000, mar(3)), // empata en unidades e ingreso con zzz
	})

	out, err := uc.salesStatsAt(now)
	require.NoError(t, err)

	assert.Equal(t, "aaa", out.MostSoldProduct.ArticleID,
		"en empate gana el article_id lexicográficamente menor")
	assert.Equal(t, "aaa", out.LeastSoldProduct.ArticleID)
	assert.Equal(t, "aaa", out.HighestRevenueProduct.ArticleID)
}

func TestSalesStats_SinVentas(t *testing.T) {
	out, err := newStats(nil, nil).salesStatsAt(time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, out.TotalSales)
	assert.True(t, out.AverageSalePrice.IsZero(), "sin ventas el promedio es 0")
	assert.Nil(t, out.MostSoldProduct)
	assert.Nil(t, out.LeastSoldProduct)
	assert.Nil(t, out.HighestRevenueProduct)
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyReport
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyReport_BordesDelMes(t *testing.T) {
	uc := newStats(nil, []*entity.Sale{
		sale("a", 1, 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)),       // primer instante
		sale("b", 1, 200, time.Date(2024, 1, 31, 23, 59, 59, 0, time.Local)),   // último día
		sale("c", 1, 400, time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)),       // mes siguiente, fuera
		sale("d", 1, 800, time.Date(2023, 12, 31, 23, 59, 59, 0, time.Local)),  // mes anterior, fuera
	})

	out, err := uc.MonthlyReport(1, 2024)
	require.NoError(t, err)

	assert.Equal(t, "2024-01", out.Month)
	assert.Equal(t, 2, out.TotalSales)
	assert.True(t, out.TotalRevenue.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, out.TotalQuantity)
}

func TestMonthlyReport_Top5PorIngreso(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	uc := newStats(nil, []*entity.Sale{
		sale("a", 1, 100, date),
		sale("b", 1, 700, date),
		sale("c", 1, 300, date),
		sale("d", 1, 500, date),
		sale("e", 1, 200, date),
		sale("f", 1, 600, date),
		sale("g", 1, 400, date),
	})

	out, err := uc.MonthlyReport(1, 2024)
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 5, "el top se trunca a 5 productos")

	got := make([]string, 0, 5)
	for _, p := range out.TopProducts {
		got = append(got, p.ArticleID)
	}
	assert.Equal(t, []string{"b", "f", "d", "g", "c"}, got, "ordenado por ingreso descendente")
}

func TestMonthlyReport_EmpateEnIngreso(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	uc := newStats(nil, []*entity.Sale{
		sale("zzz", 1, 500, date),
		sale("aaa", 1, 500, date),
	})

	out, err := uc.MonthlyReport(1, 2024)
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "aaa", out.TopProducts[0].ArticleID,
		"en empate de ingreso ordena por article_id ascendente")
}

func TestMonthlyReport_AgrupaVentasDelMismoArticulo(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	uc := newStats(nil, []*entity.Sale{
		sale("a", 2, 1000, date),
		sale("a", 3, 1500, date.Add(time.Hour)),
	})

	out, err := uc.MonthlyReport(1, 2024)
	require.NoError(t, err)
	require.Len(t, out.TopProducts, 1)

	top := out.TopProducts[0]
	assert.Equal(t, 5, top.TotalQuantity)
	assert.True(t, top.TotalRevenue.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 2, top.SaleCount)
}

func TestMonthlyReport_MesInvalido(t *testing.T) {
	uc := newStats(nil, nil)
	for _, m := range []int{0, 13, -1} {
		_, err := uc.MonthlyReport(m, 2024)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "mes %d debe rechazarse", m)
	}
	_, err := uc.MonthlyReport(1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMonthlyReport_MesSinVentas(t *testing.T) {
	uc := newStats(nil, nil)
	out, err := uc.MonthlyReport(6, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalSales)
	assert.Empty(t, out.TopProducts)
	assert.True(t, out.TotalRevenue.IsZero())
}
