package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

// DashboardHandler placeholder for the dashboard widgets; the client renders its own data for now.
type DashboardHandler struct{}

// NewDashboardHandler builds the handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// NotImplemented godoc
// @Summary      Dashboard widgets (kpis, stock-movement, category-distribution)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/dashboard/kpis [get]
func (h *DashboardHandler) NotImplemented(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{
		Code:    "NOT_IMPLEMENTED",
		Message: "dashboard endpoint " + c.Path() + " is not implemented yet",
	})
}
