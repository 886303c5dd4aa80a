package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
)

// OperationHandler warehouse operations and their status lifecycle.
type OperationHandler struct {
	uc    *inventory.OperationUseCase
	slips ports.SlipRenderer
}

// NewOperationHandler builds the handler.
func NewOperationHandler(uc *inventory.OperationUseCase, slips ports.SlipRenderer) *OperationHandler {
	return &OperationHandler{uc: uc, slips: slips}
}

// List godoc
// @Summary      List operations
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "Receipt | Delivery | Transfer | Adjustment"
// @Param        status  query  string  false  "Draft | Waiting | Ready | Done | Cancelled"
// @Param        q       query  string  false  "Substring of reference or contact"
// @Success      200  {array}   dto.OperationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), dto.OperationFilter{
		Type:   strings.TrimSpace(c.Query("type")),
		Status: strings.TrimSpace(c.Query("status")),
		Q:      strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get an operation
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Operation ID"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create an operation
// @Description  The reference is generated per type (WH/IN/0001, WH/OUT/0001, ...) unless one is supplied.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOperationRequest  true  "Operation"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations [post]
func (h *OperationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOperationRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Change the status of an operation
// @Description  Moving to Done applies the items to product stock and records the stock movements atomically.
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Operation ID"
// @Param        body  body  dto.StatusRequest  true  "New status"
// @Success      200   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/status [patch]
func (h *OperationHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Slip godoc
// @Summary      Printable operation slip
// @Tags         operations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "Operation ID"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id}/slip [get]
func (h *OperationHandler) Slip(c *fiber.Ctx) error {
	op, err := h.uc.GetEntity(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	pdf, err := h.slips.OperationSlip(op)
	if err != nil {
		return err
	}
	name := strings.ReplaceAll(op.ReferenceNumber, "/", "-")
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name+".pdf"))
	return c.Send(pdf)
}
