package dto

// ErrorResponse HTTP error body. Message is always set; Fields only on validation errors.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse body of the health endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
