package dto

// StockMovementFilter query parameters of GET /api/stock-movements.
type StockMovementFilter struct {
	Status    string
	Type      string
	ProductID string
	Q         string
}

// StockMovementResponse movement row for the move-history page. Date and time are UTC.
type StockMovementResponse struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Product      string `json:"product"`
	ProductID    string `json:"productId,omitempty"`
	SKU          string `json:"sku"`
	Type         string `json:"type"`
	Reference    string `json:"reference"`
	Quantity     int    `json:"quantity"`
	LocationFrom string `json:"locationFrom,omitempty"`
	LocationTo   string `json:"locationTo,omitempty"`
	Contact      string `json:"contact,omitempty"`
	Status       string `json:"status"`
}
