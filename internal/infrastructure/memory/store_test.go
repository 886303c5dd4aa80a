package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

func newProduct(name, sku string, stock int) *entity.Product {
	return &entity.Product{
		ID: uuid.NewString(), Name: name, SKU: sku, Category: "Electronics",
		Stock: stock, IsActive: true, Price: decimal.NewFromInt(10),
	}
}

func TestProductRepo_DuplicateSKU(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	require.NoError(t, repo.Create(ctx, newProduct("Chipset", "NC-X1", 5)))
	err := repo.Create(ctx, newProduct("Other", "NC-X1", 1))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Products()

	a := newProduct("NanoTech Chipset", "NC-X1", 5)
	b := newProduct("Cable", "CB-2", 0)
	b.SupplierInfo = "Nanoflex Ltd"
	c := newProduct("Battery", "BT-9", 3)
	c.IsActive = false
	for _, p := range []*entity.Product{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx, repository.ProductFilter{Text: "NANO"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cable", list[0].Name, "sorted by name")

	list, err = repo.List(ctx, repository.ProductFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, list, 3)

	maxPrice := decimal.NewFromInt(10)
	list, err = repo.List(ctx, repository.ProductFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Len(t, list, 2, "max price is inclusive")
}

func TestTxRunner_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct("Chipset", "NC-X1", 5)
	require.NoError(t, s.Products().Create(ctx, p))

	boom := errors.New("boom")
	err := NewTxRunner(s).Run(ctx, func(products repository.ProductRepository, _ repository.OperationRepository, movements repository.StockMovementRepository) error {
		require.NoError(t, products.UpdateStock(ctx, p.ID, 1, entity.StockStatusLowStock))
		require.NoError(t, movements.Create(ctx, &entity.StockMovement{ID: uuid.NewString(), ProductID: p.ID, Timestamp: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	list, err := s.Movements().List(ctx, repository.StockMovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := newProduct("Chipset", "NC-X1", 5)
	require.NoError(t, s.Products().Create(ctx, p))

	err := NewTxRunner(s).Run(ctx, func(products repository.ProductRepository, _ repository.OperationRepository, _ repository.StockMovementRepository) error {
		return products.UpdateStock(ctx, p.ID, 9, entity.StockStatusInStock)
	})
	require.NoError(t, err)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Stock)
}

func TestOperationRepo_ReferenceSequencePerPrefix(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Operations()

	n, _ := repo.NextReferenceSeq(ctx, "WH/IN")
	assert.Equal(t, int64(1), n)
	n, _ = repo.NextReferenceSeq(ctx, "WH/IN")
	assert.Equal(t, int64(2), n)
	n, _ = repo.NextReferenceSeq(ctx, "WH/OUT")
	assert.Equal(t, int64(1), n)
}

func TestOperationRepo_ReferenceExists(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Operations()
	require.NoError(t, repo.Create(ctx, &entity.Operation{
		ID: uuid.NewString(), ReferenceNumber: "WH/IN/0001", Type: entity.OperationReceipt, Status: entity.StatusDraft,
	}))

	taken, err := repo.ReferenceExists(ctx, "WH/IN/0001")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.ReferenceExists(ctx, "WH/IN/0002")
	require.NoError(t, err)
	assert.False(t, taken)
}
