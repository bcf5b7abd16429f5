package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventario-api/internal/application/auth"
	"github.com/tu-usuario/ventario-api/internal/application/sales"
	"github.com/tu-usuario/ventario-api/internal/application/stats"
	"github.com/tu-usuario/ventario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC *usecase.ArticleUseCase
	SaleUC    *sales.SaleUseCase
	StatsUC   *stats.StatsUseCase
	ReportUC  *stats.ReportPDFUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
// Las rutas literales (/stats, /low-stock, /search, /report, ...) van antes
// que las rutas con parámetro /:id para que Fiber no las capture como ID.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	statsHandler := NewStatsHandler(deps.StatsUC, deps.ReportUC)

	// Articles (protegido)
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/stats", statsHandler.ArticleStats)
	articles.Get("/low-stock", articleHandler.ListLowStock)
	articles.Get("/search", articleHandler.Search)
	articles.Get("/reference/:reference", articleHandler.GetByReference)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Delete("/:id", articleHandler.Delete)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/stats", statsHandler.SalesStats)
	salesGroup.Get("/range", saleHandler.ListByDateRange)
	salesGroup.Get("/report/:year/:month", statsHandler.MonthlyReport)
	salesGroup.Get("/report/:year/:month/pdf", statsHandler.MonthlyReportPDF)
	salesGroup.Get("/article/:articleId", saleHandler.ListByArticle)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)
}
