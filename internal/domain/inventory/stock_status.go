package inventory

import "github.com/jhoicas/stockmaster-api/internal/domain/entity"

// DeriveStockStatus domain service: stock <= 0 is Out of Stock, stock <= minStockLevel is Low Stock.
func DeriveStockStatus(stock, minStockLevel int) string {
	switch {
	case stock <= 0:
		return entity.StockStatusOutOfStock
	case stock <= minStockLevel:
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}

// Refresh recomputes p.Status from its stock counters. Every write path calls it.
func Refresh(p *entity.Product) {
	p.Status = DeriveStockStatus(p.Stock, p.MinStockLevel)
}
