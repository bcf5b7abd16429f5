// Package stats deriva las estadísticas del dashboard a partir de snapshots
// de artículos y ventas. Todo se recalcula en cada petición: no hay vistas
// materializadas ni caché que invalidar.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

const reportTopProducts = 5 // productos en el top del reporte mensual

// StatsUseCase agregados de catálogo y ventas.
//
// La ventana "mensual" es el mes calendario en curso (día 1 a las 00:00 hasta
// ahora), no los últimos 30 días. Los empates en más/menos vendido se
// resuelven por article_id lexicográfico para que el resultado sea
// determinista entre ejecuciones.
type StatsUseCase struct {
	articleRepo       repository.ArticleRepository
	saleRepo          repository.SaleRepository
	lowStockThreshold int
}

// NewStatsUseCase construye el caso de uso. threshold < 1 usa 2.
func NewStatsUseCase(articleRepo repository.ArticleRepository, saleRepo repository.SaleRepository, lowStockThreshold int) *StatsUseCase {
	if lowStockThreshold < 1 {
		lowStockThreshold = 2
	}
	return &StatsUseCase{articleRepo: articleRepo, saleRepo: saleRepo, lowStockThreshold: lowStockThreshold}
}

// ArticleStats agregados del catálogo: total de artículos, valor del
// inventario Σ(precio × cantidad), artículos con stock bajo, unidades totales
// y precio promedio por unidad (valor total / unidades, 0 si no hay unidades).
func (uc *StatsUseCase) ArticleStats() (*dto.ArticleStatsDTO, error) {
	articles, err := uc.articleRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("stats: listar artículos: %w", err)
	}

	out := &dto.ArticleStatsDTO{
		TotalArticles:       len(articles),
		TotalInventoryValue: decimal.Zero,
		AveragePrice:        decimal.Zero,
	}
	for _, a := range articles {
		qty := decimal.NewFromInt(int64(a.Quantity))
		out.TotalInventoryValue = out.TotalInventoryValue.Add(a.PurchasePrice.Mul(qty))
		out.TotalQuantity += a.Quantity
		if a.Quantity < uc.lowStockThreshold {
			out.LowStockCount++
		}
	}
	if out.TotalQuantity > 0 {
		out.AveragePrice = out.TotalInventoryValue.
			Div(decimal.NewFromInt(int64(out.TotalQuantity))).Round(2)
	}
	return out, nil
}

// SalesStats agregados globales de ventas más la ventana del mes en curso.
func (uc *StatsUseCase) SalesStats() (*dto.SalesStatsDTO, error) {
	return uc.salesStatsAt(time.Now())
}

func (uc *StatsUseCase) salesStatsAt(now time.Time) (*dto.SalesStatsDTO, error) {
	sales, err := uc.saleRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("stats: listar ventas: %w", err)
	}

	out := &dto.SalesStatsDTO{
		TotalSales:       len(sales),
		TotalRevenue:     decimal.Zero,
		AverageSalePrice: decimal.Zero,
		MonthlyRevenue:   decimal.Zero,
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var monthly []*entity.Sale
	for _, s := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)
		out.TotalQuantity += s.Quantity
		if !s.SaleDate.Before(monthStart) && !s.SaleDate.After(now) {
			monthly = append(monthly, s)
			out.MonthlyRevenue = out.MonthlyRevenue.Add(s.TotalAmount)
		}
	}
	out.MonthlySales = len(monthly)
	if out.TotalSales > 0 {
		out.AverageSalePrice = out.TotalRevenue.
			Div(decimal.NewFromInt(int64(out.TotalSales))).Round(2)
	}

	groups := groupByArticle(monthly)
	out.MonthlyProductCount = len(groups)
	out.MostSoldProduct = pickGroup(groups, func(best, g *dto.ProductStatsDTO) bool {
		return g.TotalQuantity > best.TotalQuantity
	})
	out.LeastSoldProduct = pickGroup(groups, func(best, g *dto.ProductStatsDTO) bool {
		return g.TotalQuantity < best.TotalQuantity
	})
	out.HighestRevenueProduct = pickGroup(groups, func(best, g *dto.ProductStatsDTO) bool {
		return g.TotalRevenue.GreaterThan(best.TotalRevenue)
	})
	return out, nil
}

// MonthlyReport totales y top-5 por ingreso de un mes calendario concreto.
// El intervalo es [día 1 00:00, último instante del mes] inclusive, en la
// zona horaria del servidor.
func (uc *StatsUseCase) MonthlyReport(month, year int) (*dto.MonthlyReportDTO, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, domain.ErrInvalidInput
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	sales, err := uc.saleRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("stats: ventas del mes %d-%02d: %w", year, month, err)
	}

	out := &dto.MonthlyReportDTO{
		Month:        fmt.Sprintf("%d-%02d", year, month),
		TotalSales:   len(sales),
		TotalRevenue: decimal.Zero,
		TopProducts:  []dto.ProductStatsDTO{},
	}
	for _, s := range sales {
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalAmount)
		out.TotalQuantity += s.Quantity
	}

	groups := groupByArticle(sales)
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].TotalRevenue.Equal(groups[j].TotalRevenue) {
			return groups[i].TotalRevenue.GreaterThan(groups[j].TotalRevenue)
		}
		return groups[i].ArticleID < groups[j].ArticleID
	})
	if len(groups) > reportTopProducts {
		groups = groups[:reportTopProducts]
	}
	for _, g := range groups {
		out.TopProducts = append(out.TopProducts, *g)
	}
	return out, nil
}

// groupByArticle acumula cantidad, ingreso y número de ventas por artículo.
// Devuelve los grupos ordenados por article_id ascendente (base del desempate).
func groupByArticle(sales []*entity.Sale) []*dto.ProductStatsDTO {
	byID := make(map[string]*dto.ProductStatsDTO)
	for _, s := range sales {
		g, ok := byID[s.ArticleID]
		if !ok {
			g = &dto.ProductStatsDTO{
				ArticleID:    s.ArticleID,
				ArticleTitle: s.ArticleTitle,
				TotalRevenue: decimal.Zero,
			}
			byID[s.ArticleID] = g
		}
		g.TotalQuantity += s.Quantity
		g.TotalRevenue = g.TotalRevenue.Add(s.TotalAmount)
		g.SaleCount++
	}
	groups := make([]*dto.ProductStatsDTO, 0, len(byID))
	for _, g := range byID {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ArticleID < groups[j].ArticleID })
	return groups
}

// pickGroup devuelve el primer grupo que "better" no mejora; como groups viene
// ordenado por article_id, los empates quedan para el id lexicográfico menor.
func pickGroup(groups []*dto.ProductStatsDTO, better func(best, g *dto.ProductStatsDTO) bool) *dto.ProductStatsDTO {
	if len(groups) == 0 {
		return nil
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if better(best, g) {
			best = g
		}
	}
	return best
}
