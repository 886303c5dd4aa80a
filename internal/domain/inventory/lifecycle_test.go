package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		name       string
		stock, min int
		want       string
	}{
		{"empty", 0, 10, entity.StockStatusOutOfStock},
		{"negative", -3, 0, entity.StockStatusOutOfStock},
		{"below minimum", 12, 15, entity.StockStatusLowStock},
		{"at minimum", 10, 10, entity.StockStatusLowStock},
		{"above minimum", 154, 20, entity.StockStatusInStock},
		{"no minimum", 1, 0, entity.StockStatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.DeriveStockStatus(tc.stock, tc.min))
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{entity.StatusDraft, entity.StatusWaiting},
		{entity.StatusDraft, entity.StatusReady},
		{entity.StatusWaiting, entity.StatusReady},
		{entity.StatusReady, entity.StatusWaiting},
		{entity.StatusReady, entity.StatusDone},
		{entity.StatusDraft, entity.StatusCancelled},
		{entity.StatusWaiting, entity.StatusCancelled},
		{entity.StatusReady, entity.StatusCancelled},
	}
	for _, e := range allowed {
		assert.True(t, inventory.CanTransition(e[0], e[1]), "%s -> %s", e[0], e[1])
	}

	denied := [][2]string{
		{entity.StatusDone, entity.StatusDraft},
		{entity.StatusDone, entity.StatusCancelled},
		{entity.StatusCancelled, entity.StatusReady},
		{entity.StatusDraft, entity.StatusDone},
		{entity.StatusWaiting, entity.StatusDone},
		{entity.StatusWaiting, entity.StatusDraft},
		{entity.StatusReady, entity.StatusReady},
	}
	for _, e := range denied {
		assert.False(t, inventory.CanTransition(e[0], e[1]), "%s -> %s", e[0], e[1])
	}
}

func TestValidateTransition_Errors(t *testing.T) {
	assert.ErrorIs(t, inventory.ValidateTransition(entity.StatusDone, entity.StatusDraft), domain.ErrInvalidTransition)
	assert.ErrorIs(t, inventory.ValidateTransition(entity.StatusDraft, "Archived"), domain.ErrInvalidInput)
	assert.NoError(t, inventory.ValidateTransition(entity.StatusReady, entity.StatusDone))
}

func TestStockDelta(t *testing.T) {
	assert.Equal(t, 5, inventory.StockDelta(entity.OperationReceipt, 5))
	assert.Equal(t, -5, inventory.StockDelta(entity.OperationDelivery, 5))
	assert.Equal(t, -2, inventory.StockDelta(entity.OperationAdjustment, -2))
	assert.Equal(t, 0, inventory.StockDelta(entity.OperationTransfer, 5))
}

func TestAppliedQuantity(t *testing.T) {
	assert.Equal(t, 7, inventory.AppliedQuantity(entity.OperationItem{Quantity: 7}))
	assert.Equal(t, 4, inventory.AppliedQuantity(entity.OperationItem{Quantity: 7, DoneQuantity: 4}))
}

func TestValidateItemQuantity(t *testing.T) {
	assert.NoError(t, inventory.ValidateItemQuantity(entity.OperationAdjustment, -3))
	assert.ErrorIs(t, inventory.ValidateItemQuantity(entity.OperationAdjustment, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateItemQuantity(entity.OperationDelivery, -1), domain.ErrInvalidInput)
	assert.NoError(t, inventory.ValidateItemQuantity(entity.OperationReceipt, 1))
}

func TestReference(t *testing.T) {
	assert.Equal(t, "WH/IN/0003", inventory.FormatReference(inventory.ReferencePrefix(entity.OperationReceipt), 3))
	assert.Equal(t, "WH/OUT/0012", inventory.FormatReference(inventory.ReferencePrefix(entity.OperationDelivery), 12))
	assert.Equal(t, "WH/INT", inventory.ReferencePrefix(entity.OperationTransfer))
	assert.Equal(t, "WH/ADJ/12345", inventory.FormatReference(inventory.ReferencePrefix(entity.OperationAdjustment), 12345))
}
