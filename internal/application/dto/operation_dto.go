package dto

import "time"

// CreateOperationRequest body of POST /api/operations.
type CreateOperationRequest struct {
	Reference           string                 `json:"reference" validate:"max=50"`
	Type                string                 `json:"type" validate:"required,oneof=Receipt Delivery Transfer Adjustment"`
	Status              string                 `json:"status" validate:"omitempty,oneof=Draft Waiting Ready Done Cancelled"`
	ScheduleDate        string                 `json:"scheduleDate" validate:"required,datetime=2006-01-02"`
	Contact             string                 `json:"contact" validate:"max=200"`
	SourceLocation      string                 `json:"sourceLocation" validate:"max=200"`
	DestinationLocation string                 `json:"destinationLocation" validate:"max=200"`
	Notes               string                 `json:"notes"`
	Responsible         string                 `json:"responsible" validate:"max=200"`
	Items               []OperationItemRequest `json:"items" validate:"dive"`
}

// OperationItemRequest one line of a new operation. Quantity is signed only for adjustments.
type OperationItemRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	ProductName  string `json:"productName"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity" validate:"ne=0"`
	DoneQuantity int    `json:"doneQuantity"`
}

// StatusRequest body of the status PATCH endpoints.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OperationFilter query parameters of GET /api/operations.
type OperationFilter struct {
	Type   string
	Status string
	Q      string
}

// OperationResponse operation as the web client expects it. ScheduleDate is YYYY-MM-DD.
type OperationResponse struct {
	ID                  string                  `json:"id"`
	Reference           string                  `json:"reference"`
	Type                string                  `json:"type"`
	Status              string                  `json:"status"`
	ScheduleDate        string                  `json:"scheduleDate"`
	Contact             string                  `json:"contact,omitempty"`
	SourceLocation      string                  `json:"sourceLocation,omitempty"`
	DestinationLocation string                  `json:"destinationLocation,omitempty"`
	Notes               string                  `json:"notes,omitempty"`
	Responsible         string                  `json:"responsible,omitempty"`
	IsLate              bool                    `json:"isLate"`
	DoneAt              *time.Time              `json:"doneAt,omitempty"`
	Items               []OperationItemResponse `json:"items"`
}

// OperationItemResponse one operation line.
type OperationItemResponse struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	DoneQuantity int    `json:"doneQuantity"`
}
