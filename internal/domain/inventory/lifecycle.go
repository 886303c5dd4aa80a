package inventory

import (
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// transitions allowed edges of the operation lifecycle. Done and Cancelled are terminal.
var transitions = map[string][]string{
	entity.StatusDraft:   {entity.StatusWaiting, entity.StatusReady, entity.StatusCancelled},
	entity.StatusWaiting: {entity.StatusReady, entity.StatusCancelled},
	entity.StatusReady:   {entity.StatusWaiting, entity.StatusDone, entity.StatusCancelled},
}

// CanTransition reports whether an operation may move from one status to another.
// A same-status move is not a transition and returns false.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition wraps ErrInvalidTransition with the offending edge.
func ValidateTransition(from, to string) error {
	if !entity.IsValidOperationStatus(to) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// IsInitialStatus reports whether an operation may be created directly in status s.
func IsInitialStatus(s string) bool {
	return s == entity.StatusDraft || s == entity.StatusWaiting || s == entity.StatusReady
}

// StockDelta signed change an item of quantity q applies to product stock when an
// operation of type opType is validated. Transfers move goods between locations of the
// same stock counter, so they leave it unchanged.
func StockDelta(opType string, q int) int {
	switch opType {
	case entity.OperationReceipt:
		return q
	case entity.OperationDelivery:
		return -q
	case entity.OperationAdjustment:
		return q
	default:
		return 0
	}
}

// AppliedQuantity quantity used when an item is validated: DoneQuantity when set, otherwise the demand.
func AppliedQuantity(item entity.OperationItem) int {
	if item.DoneQuantity != 0 {
		return item.DoneQuantity
	}
	return item.Quantity
}

// ValidateItemQuantity checks an item quantity against the operation type.
// Adjustments take a signed non-zero delta; every other type needs a positive quantity.
func ValidateItemQuantity(opType string, q int) error {
	if opType == entity.OperationAdjustment {
		if q == 0 {
			return fmt.Errorf("%w: adjustment quantity must not be zero", domain.ErrInvalidInput)
		}
		return nil
	}
	if q <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	return nil
}
