package dto

import "github.com/shopspring/decimal"

// ArticleStatsDTO respuesta de GET /api/articles/stats.
type ArticleStatsDTO struct {
	TotalArticles       int             `json:"total_articles"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"` // Σ(purchase_price × quantity)
	LowStockCount       int             `json:"low_stock_count"`
	TotalQuantity       int             `json:"total_quantity"`
	AveragePrice        decimal.Decimal `json:"average_price"` // valor total / unidades totales
}

// ProductStatsDTO acumulado de ventas de un artículo dentro de una ventana.
type ProductStatsDTO struct {
	ArticleID     string          `json:"article_id"`
	ArticleTitle  string          `json:"article_title"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	SaleCount     int             `json:"sale_count"`
}

// SalesStatsDTO respuesta de GET /api/sales/stats.
// La ventana "mensual" es el mes calendario en curso (día 1, 00:00 → ahora).
type SalesStatsDTO struct {
	TotalSales            int              `json:"total_sales"`
	TotalRevenue          decimal.Decimal  `json:"total_revenue"`
	TotalQuantity         int              `json:"total_quantity"`
	AverageSalePrice      decimal.Decimal  `json:"average_sale_price"` // revenue / número de ventas
	MonthlySales          int              `json:"monthly_sales"`
	MonthlyRevenue        decimal.Decimal  `json:"monthly_revenue"`
	MonthlyProductCount   int              `json:"monthly_product_count"`
	MostSoldProduct       *ProductStatsDTO `json:"most_sold_product"`
	LeastSoldProduct      *ProductStatsDTO `json:"least_sold_product"`
	HighestRevenueProduct *ProductStatsDTO `json:"highest_revenue_product"`
}

// MonthlyReportDTO respuesta de GET /api/sales/report/{year}/{month}.
type MonthlyReportDTO struct {
	Month         string            `json:"month"` // "2024-01"
	TotalSales    int               `json:"total_sales"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalQuantity int               `json:"total_quantity"`
	TopProducts   []ProductStatsDTO `json:"top_products"` // top 5 por ingreso
}
