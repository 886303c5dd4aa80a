package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values stored on Product.
const (
	StockStatusInStock    = "In Stock"
	StockStatusLowStock   = "Low Stock"
	StockStatusOutOfStock = "Out of Stock"
)

// DefaultUnitOfMeasure applied when the caller sends none.
const DefaultUnitOfMeasure = "pcs"

// Product a catalog item (SKU) with a single warehouse-wide stock counter.
// Status is derived from Stock and MinStockLevel on every write (see inventory.DeriveStockStatus).
type Product struct {
	ID              string
	Name            string
	SKU             string // unique
	Barcode         string
	Category        string
	Description     string
	Image           string
	UnitOfMeasure   string
	MinStockLevel   int
	ReorderQuantity int
	SupplierInfo    string
	Price           decimal.Decimal
	Tags            []string
	IsActive        bool
	Location        string
	Stock           int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidStockStatus reports whether s is one of the stock status values.
func IsValidStockStatus(s string) bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}
