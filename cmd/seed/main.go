// seed aplica las migraciones y carga datos de demostración: cinco artículos
// de catálogo y un usuario admin (admin@ventario.local / admin12345).
//
// Uso: go run ./cmd/seed
// Es idempotente: los artículos se identifican por referencia y el usuario
// por email; lo que ya existe se omite.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventario-api/internal/application/auth"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/application/usecase"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/ventario-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "migraciones: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migraciones aplicadas")

	articleUC := usecase.NewArticleUseCase(postgres.NewArticleRepository(pool), cfg.Inventory.LowStockThreshold)

	demo := []dto.CreateArticleRequest{
		{
			Title:         "Portátil HP Pavilion",
			Description:   "Portátil HP Pavilion con Intel Core i5 y 8GB de RAM",
			Photo:         "https://via.placeholder.com/300x200?text=HP+Laptop",
			PurchasePrice: decimal.NewFromInt(3500),
			Quantity:      10,
			Reference:     "REF001",
		},
		{
			Title:         "Teléfono Samsung Galaxy",
			Description:   "Samsung Galaxy S21 con cámara de 64MP",
			Photo:         "https://via.placeholder.com/300x200?text=Samsung+Phone",
			PurchasePrice: decimal.NewFromInt(2800),
			Quantity:      15,
			Reference:     "REF002",
		},
		{
			Title:         "Audífonos AirPods Pro",
			Description:   "Apple AirPods Pro con cancelación de ruido",
			Photo:         "https://via.placeholder.com/300x200?text=AirPods+Pro",
			PurchasePrice: decimal.NewFromInt(1200),
			Quantity:      25,
			Reference:     "REF003",
		},
		{
			Title:         "Reloj Apple Watch",
			Description:   "Apple Watch Series 7 con GPS",
			Photo:         "https://via.placeholder.com/300x200?text=Apple+Watch",
			PurchasePrice: decimal.NewFromInt(1800),
			Quantity:      8,
			Reference:     "REF004",
		},
		{
			Title:         "Tableta iPad Pro",
			Description:   "Apple iPad Pro con Apple Pencil",
			Photo:         "https://via.placeholder.com/300x200?text=iPad+Pro",
			PurchasePrice: decimal.NewFromInt(4200),
			Quantity:      5,
			Reference:     "REF005",
		},
	}

	created := 0
	for _, in := range demo {
		if _, err := articleUC.Create(in); err != nil {
			if errors.Is(err, domain.ErrDuplicateReference) {
				continue
			}
			fmt.Fprintf(os.Stderr, "crear artículo %s: %v\n", in.Reference, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("artículos creados: %d (omitidos %d existentes)\n", created, len(demo)-created)

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	_, err = authUC.Register(dto.RegisterRequest{
		Email:    "admin@ventario.local",
		Password: "admin12345",
		Name:     "Admin",
	})
	switch {
	case err == nil:
		fmt.Println("usuario admin creado: admin@ventario.local")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Println("usuario admin ya existe, omitido")
	default:
		fmt.Fprintf(os.Stderr, "crear usuario admin: %v\n", err)
		os.Exit(1)
	}
}
