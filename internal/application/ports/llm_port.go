package ports

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

// LLMService outbound port for the AI providers (Gemini, Anthropic, a test fake).
// Callers pass a context with a deadline; implementations must honour it.
type LLMService interface {
	// Name provider label returned to the client.
	Name() string
	// StockInsights asks for reorder advice on the given products.
	StockInsights(ctx context.Context, products []dto.ReplenishmentSuggestion) (string, error)
}
