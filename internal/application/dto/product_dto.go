package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest body for create and full update (PUT). Status is derived, never read.
type ProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Barcode         string          `json:"barcode" validate:"max=100"`
	Category        string          `json:"category" validate:"required,min=1,max=100"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	Stock           int             `json:"stock" validate:"min=0"`
	MinStock        int             `json:"minStock" validate:"min=0"`
	ReorderQuantity int             `json:"reorderQuantity" validate:"min=0"`
	Price           decimal.Decimal `json:"price"`
	Location        string          `json:"location"`
	Unit            string          `json:"unit"`
	Supplier        string          `json:"supplier"`
	Tags            []string        `json:"tags"`
	IsActive        *bool           `json:"isActive"`
}

// ProductFilter query parameters of GET /api/products.
type ProductFilter struct {
	Q               string
	Category        string
	Status          string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	IncludeInactive bool
}

// ProductResponse product as the web client expects it.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	Stock           int             `json:"stock"`
	MinStock        int             `json:"minStock"`
	ReorderQuantity int             `json:"reorderQuantity"`
	Price           decimal.Decimal `json:"price"`
	Status          string          `json:"status"`
	Image           string          `json:"image"`
	Location        string          `json:"location"`
	Unit            string          `json:"unit"`
	Supplier        string          `json:"supplier,omitempty"`
	Tags            []string        `json:"tags"`
	IsActive        bool            `json:"isActive"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// ImportResult summary of a spreadsheet import.
type ImportResult struct {
	Imported int               `json:"imported"`
	Products []ProductResponse `json:"products"`
}
