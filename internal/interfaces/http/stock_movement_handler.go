package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
)

// StockMovementHandler move history endpoints.
type StockMovementHandler struct {
	uc *inventory.StockMovementUseCase
}

// NewStockMovementHandler builds the handler.
func NewStockMovementHandler(uc *inventory.StockMovementUseCase) *StockMovementHandler {
	return &StockMovementHandler{uc: uc}
}

// List godoc
// @Summary      List stock movements, newest first
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "Movement status"
// @Param        type       query  string  false  "Operation type"
// @Param        productId  query  string  false  "Product ID"
// @Param        q          query  string  false  "Substring of reference, contact or product name"
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), dto.StockMovementFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		Type:      strings.TrimSpace(c.Query("type")),
		ProductID: strings.TrimSpace(c.Query("productId")),
		Q:         strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Change the status of a stock movement
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Movement ID"
// @Param        body  body  dto.StatusRequest  true  "New status"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id}/status [patch]
func (h *StockMovementHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
