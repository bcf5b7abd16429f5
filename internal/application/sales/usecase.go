// Package sales implementa el libro de ventas: cada mutación acopla la fila de
// la venta con el contador de stock del artículo dentro de una transacción,
// con la fila del artículo bloqueada (SELECT FOR UPDATE) para que dos ventas
// concurrentes sobre el mismo artículo nunca lean stock viejo.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventario-api/internal/application/dto"
	"github.com/tu-usuario/ventario-api/internal/domain"
	"github.com/tu-usuario/ventario-api/internal/domain/entity"
	"github.com/tu-usuario/ventario-api/internal/domain/repository"
)

// SaleUseCase casos de uso del libro de ventas.
// Las lecturas usan los repos atados al pool; las mutaciones pasan por txRunner.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// CreateSale registra una venta:
//  1. Carga y bloquea el artículo; falla ErrNotFound si no existe.
//  2. Falla ErrInsufficientStock (con disponible y solicitado en el mensaje)
//     si quantity > stock actual.
//  3. Inserta la venta denormalizando el título del artículo en ese instante.
//  4. Decrementa el stock del artículo.
//
// Los pasos 1-4 corren en una sola transacción: ningún fallo deja ajuste parcial.
// La operación NO es idempotente: un reintento tras timeout descuenta stock dos
// veces; la deduplicación es responsabilidad del llamador.
func (uc *SaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ArticleID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	saleDate, err := parseSaleDate(in.SaleDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	unitPrice, err := resolveUnitPrice(in.UnitPrice, in.TotalAmount, in.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		ArticleID:   in.ArticleID,
		Quantity:    in.Quantity,
		UnitPrice:   unitPrice,
		TotalAmount: in.TotalAmount,
		SaleDate:    saleDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		saleRepo repository.SaleRepository,
	) error {
		article, err := articleRepo.GetByIDForUpdate(in.ArticleID)
		if err != nil {
			return err
		}
		if article == nil {
			return fmt.Errorf("artículo %s: %w", in.ArticleID, domain.ErrNotFound)
		}
		if in.Quantity > article.Quantity {
			return fmt.Errorf("%w: cantidad disponible (%d) menor que la solicitada (%d)",
				domain.ErrInsufficientStock, article.Quantity, in.Quantity)
		}
		sale.ArticleTitle = article.Title
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		return articleRepo.UpdateQuantity(article.ID, article.Quantity-in.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// UpdateSale actualiza parcialmente una venta. Si cambia la cantidad se ajusta
// el stock del artículo con delta = cantidadVieja - cantidadNueva; un resultado
// negativo rechaza toda la actualización y el stock queda intacto. Si el
// artículo ya no existe, el ajuste se omite (referencia best-effort) y los
// demás campos se actualizan normalmente.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalAmount != nil && in.TotalAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var newDate *time.Time
	if in.SaleDate != nil {
		d, err := parseSaleDate(*in.SaleDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		newDate = &d
	}

	var updated *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if in.Quantity != nil && *in.Quantity != sale.Quantity {
			article, err := articleRepo.GetByIDForUpdate(sale.ArticleID)
			if err != nil {
				return err
			}
			if article != nil {
				delta := sale.Quantity - *in.Quantity
				newQty := article.Quantity + delta
				if newQty < 0 {
					return fmt.Errorf("%w: cantidad disponible (%d) menor que la solicitada (%d)",
						domain.ErrInsufficientStock, article.Quantity+sale.Quantity, *in.Quantity)
				}
				if err := articleRepo.UpdateQuantity(article.ID, newQty); err != nil {
					return err
				}
			}
			sale.Quantity = *in.Quantity
		}
		if in.UnitPrice != nil {
			sale.UnitPrice = *in.UnitPrice
		}
		if in.TotalAmount != nil {
			sale.TotalAmount = *in.TotalAmount
		}
		if newDate != nil {
			sale.SaleDate = *newDate
		}
		sale.UpdatedAt = time.Now()
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(updated), nil
}

// DeleteSale elimina una venta restaurando antes su cantidad al artículo.
// Si el artículo ya no existe se omite la restauración (no es error).
// Un segundo delete sobre el mismo ID devuelve ErrNotFound.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		articleRepo repository.ArticleRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(id)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		article, err := articleRepo.GetByIDForUpdate(sale.ArticleID)
		if err != nil {
			return err
		}
		if article != nil {
			if err := articleRepo.UpdateQuantity(article.ID, article.Quantity+sale.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.Delete(id)
	})
}

// GetByID obtiene una venta. Devuelve (nil, nil) si no existe.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// List lista ventas ordenadas por sale_date descendente, con paginación.
func (uc *SaleUseCase) List(limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByArticle ventas de un artículo, más recientes primero.
func (uc *SaleUseCase) ListByArticle(articleID string) ([]dto.SaleResponse, error) {
	if articleID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByArticle(articleID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return items, nil
}

// ListByDateRange ventas con sale_date dentro de [start, end] inclusive.
func (uc *SaleUseCase) ListByDateRange(start, end time.Time) ([]dto.SaleResponse, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return items, nil
}

// parseSaleDate acepta "2006-01-02" o RFC3339. Vacío = ahora.
func parseSaleDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// resolveUnitPrice usa el precio unitario recibido o lo deriva de total/cantidad.
func resolveUnitPrice(unitPrice *decimal.Decimal, total decimal.Decimal, qty int) (decimal.Decimal, error) {
	if unitPrice != nil {
		if unitPrice.LessThan(decimal.Zero) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return *unitPrice, nil
	}
	if qty <= 0 {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return total.Div(decimal.NewFromInt(int64(qty))).Round(2), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:           s.ID,
		ArticleID:    s.ArticleID,
		ArticleTitle: s.ArticleTitle,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalAmount:  s.TotalAmount,
		SaleDate:     s.SaleDate,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
