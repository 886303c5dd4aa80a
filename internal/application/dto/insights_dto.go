package dto

// StockInsightsResponse LLM reorder suggestions for the products that need attention.
type StockInsightsResponse struct {
	Insights    string                    `json:"insights"`
	Provider    string                    `json:"provider"`
	Suggestions []ReplenishmentSuggestion `json:"suggestions"`
}

// ReplenishmentSuggestion one product on the reorder list.
type ReplenishmentSuggestion struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	Supplier     string `json:"supplier,omitempty"`
	Status       string `json:"status"`
	Stock        int    `json:"stock"`
	MinStock     int    `json:"minStock"`
	SuggestedQty int    `json:"suggestedQty"`
}
