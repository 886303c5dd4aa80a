package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
)

// InsightsHandler reorder suggestions, computed locally and explained by the LLM.
type InsightsHandler struct {
	insights      *usecase.InsightsUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInsightsHandler builds the handler.
func NewInsightsHandler(insights *usecase.InsightsUseCase, replenishment *inventory.ReplenishmentUseCase) *InsightsHandler {
	return &InsightsHandler{insights: insights, replenishment: replenishment}
}

// StockInsights godoc
// @Summary      AI reorder advice for Low Stock and Out of Stock products
// @Description  Internal timeout of 15 s.
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockInsightsResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/insights/stock [post]
func (h *InsightsHandler) StockInsights(c *fiber.Ctx) error {
	out, err := h.insights.StockInsights(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Reorder list with suggested quantities
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/insights/replenishment [get]
func (h *InsightsHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
