package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
)

// InsightsTimeout upper bound for one LLM round trip.
const InsightsTimeout = 15 * time.Second

// ErrInsightsTimeout the provider did not answer within InsightsTimeout.
var ErrInsightsTimeout = errors.New("ai provider timed out")

// InsightsUseCase asks the configured LLM for reorder advice on the reorder list.
type InsightsUseCase struct {
	llm           ports.LLMService
	replenishment *inventory.ReplenishmentUseCase
	timeout       time.Duration
}

// NewInsightsUseCase builds the use case.
func NewInsightsUseCase(llm ports.LLMService, replenishment *inventory.ReplenishmentUseCase) *InsightsUseCase {
	return &InsightsUseCase{llm: llm, replenishment: replenishment, timeout: InsightsTimeout}
}

// StockInsights collects the Low Stock and Out of Stock products and asks the LLM about them.
// When nothing needs reordering the provider is not called.
func (uc *InsightsUseCase) StockInsights(ctx context.Context) (*dto.StockInsightsResponse, error) {
	suggestions, err := uc.replenishment.GenerateReplenishmentList(ctx)
	if err != nil {
		return nil, err
	}
	res := &dto.StockInsightsResponse{Provider: uc.llm.Name(), Suggestions: suggestions}
	if len(suggestions) == 0 {
		res.Insights = "All products are above their minimum stock level. No reorder needed."
		return res, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.StockInsights(ctx, suggestions)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrInsightsTimeout, uc.timeout)
		}
		return nil, fmt.Errorf("stock insights: %w", err)
	}
	res.Insights = text
	return res, nil
}
