package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// ReplenishmentUseCase builds the reorder list: every active product that is Low Stock
// or Out of Stock, with a suggested order quantity.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase builds the use case.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList out-of-stock products first, then by largest shortfall.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	var candidates []*entity.Product
	for _, status := range []string{entity.StockStatusOutOfStock, entity.StockStatusLowStock} {
		list, err := uc.productRepo.List(ctx, repository.ProductFilter{Status: status})
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, list...)
	}

	out := make([]dto.ReplenishmentSuggestion, 0, len(candidates))
	for _, p := range candidates {
		out = append(out, dto.ReplenishmentSuggestion{
			ProductID:    p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			Category:     p.Category,
			Supplier:     p.SupplierInfo,
			Status:       p.Status,
			Stock:        p.Stock,
			MinStock:     p.MinStockLevel,
			SuggestedQty: SuggestedOrderQuantity(p),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := out[i].Status == entity.StockStatusOutOfStock, out[j].Status == entity.StockStatusOutOfStock
		if oi != oj {
			return oi
		}
		return out[i].MinStock-out[i].Stock > out[j].MinStock-out[j].Stock
	})
	return out, nil
}

// SuggestedOrderQuantity tops stock up to 1.5x the minimum level, and never orders
// less than the product's reorder quantity.
func SuggestedOrderQuantity(p *entity.Product) int {
	ideal := (p.MinStockLevel*3 + 1) / 2
	qty := ideal - p.Stock
	if qty < p.ReorderQuantity {
		qty = p.ReorderQuantity
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}
