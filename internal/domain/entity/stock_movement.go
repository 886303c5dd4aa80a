package entity

import "time"

// StockMovement append-only record of a quantity change for a product, tied to a reference document.
// Quantity is signed as applied to the product stock. Only Status may change after creation.
type StockMovement struct {
	ID              string
	OperationID     string // empty for movements that did not come from an operation (seeds, imports)
	Type            string // same values as Operation.Type
	ReferenceNumber string
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        int
	LocationFrom    string
	LocationTo      string
	Contact         string
	Status          string
	CreatedBy       string
	Timestamp       time.Time
}
