package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/seed"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func TestDemo_SeedsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)

	res, err := seed.Demo(ctx, tx, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Products: 10, Operations: 4, Movements: 4}, res)

	chip, err := store.Products().GetBySKU(ctx, "NC-X1")
	require.NoError(t, err)
	require.NotNil(t, chip)
	assert.Equal(t, "TechGlobal", chip.SupplierInfo)
	assert.Equal(t, entity.StockStatusInStock, chip.Status)

	fiber, err := store.Products().GetBySKU(ctx, "CF-S9")
	require.NoError(t, err)
	assert.Equal(t, entity.StockStatusOutOfStock, fiber.Status)

	ops, err := store.Operations().List(ctx, repository.OperationFilter{Type: entity.OperationReceipt})
	require.NoError(t, err)
	refs := []string{}
	for _, op := range ops {
		refs = append(refs, op.ReferenceNumber)
	}
	assert.ElementsMatch(t, []string{"WH/IN/0001", "WH/IN/0002"}, refs)

	next, err := store.Operations().NextReferenceSeq(ctx, "WH/IN")
	require.NoError(t, err)
	assert.Equal(t, int64(3), next, "seeded references consume the sequence")

	again, err := seed.Demo(ctx, tx, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, seed.Result{}, again)
}
