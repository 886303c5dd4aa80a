package inventory_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	appinv "github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

type fixture struct {
	store *memory.Store
	ops   *appinv.OperationUseCase
	moves *appinv.StockMovementUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store: store,
		ops:   appinv.NewOperationUseCase(memory.NewTxRunner(store), store.Operations(), store.Products(), zerolog.Nop()),
		moves: appinv.NewStockMovementUseCase(store.Movements()),
	}
}

func (f *fixture) product(t *testing.T, sku string, stock, min int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: uuid.NewString(), Name: "Product " + sku, SKU: sku, Category: "Electronics",
		Stock: stock, MinStockLevel: min, IsActive: true, Price: decimal.NewFromInt(1),
		Status: entity.StockStatusInStock,
	}
	require.NoError(t, f.store.Products().Create(context.Background(), p))
	return p
}

func (f *fixture) stockOf(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) create(t *testing.T, opType, status string, items ...dto.OperationItemRequest) *dto.OperationResponse {
	t.Helper()
	op, err := f.ops.Create(context.Background(), "", dto.CreateOperationRequest{
		Type: opType, Status: status, ScheduleDate: "2024-10-25", Contact: "TechGlobal", Items: items,
	})
	require.NoError(t, err)
	return op
}

func TestCreate_GeneratesReferencePerPrefix(t *testing.T) {
	f := newFixture()
	p := f.product(t, "NC-X1", 10, 2)
	item := dto.OperationItemRequest{ProductID: p.ID, Quantity: 5}

	first := f.create(t, entity.OperationReceipt, "", item)
	second := f.create(t, entity.OperationReceipt, "", item)
	delivery := f.create(t, entity.OperationDelivery, "", item)

	assert.Equal(t, "WH/IN/0001", first.Reference)
	assert.Equal(t, "WH/IN/0002", second.Reference)
	assert.Equal(t, "WH/OUT/0001", delivery.Reference)
	assert.Equal(t, entity.StatusDraft, first.Status)
	assert.Equal(t, "Product NC-X1", first.Items[0].ProductName, "name is filled from the product")
	assert.Equal(t, "NC-X1", first.Items[0].SKU)
}

func TestCreate_GeneratedReferenceSkipsManualOnes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, ref := range []string{"WH/IN/0001", "WH/IN/0003"} {
		_, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{
			Reference: ref, Type: entity.OperationReceipt, ScheduleDate: "2024-10-25",
		})
		require.NoError(t, err)
	}

	var refs []string
	for i := 0; i < 3; i++ {
		op, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{Type: entity.OperationReceipt, ScheduleDate: "2024-10-25"})
		require.NoError(t, err)
		refs = append(refs, op.Reference)
	}
	assert.Equal(t, []string{"WH/IN/0002", "WH/IN/0004", "WH/IN/0005"}, refs)

	delivery, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{Type: entity.OperationDelivery, ScheduleDate: "2024-10-25"})
	require.NoError(t, err)
	assert.Equal(t, "WH/OUT/0001", delivery.Reference, "other prefixes are untouched")
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "NC-X1", 10, 2)

	_, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{
		Type: entity.OperationReceipt, Status: entity.StatusDone, ScheduleDate: "2024-10-25",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cannot be born Done")

	_, err = f.ops.Create(ctx, "", dto.CreateOperationRequest{
		Type: entity.OperationReceipt, ScheduleDate: "2024-10-25",
		Items: []dto.OperationItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown product")

	_, err = f.ops.Create(ctx, "", dto.CreateOperationRequest{
		Type: entity.OperationDelivery, ScheduleDate: "2024-10-25",
		Items: []dto.OperationItemRequest{{ProductID: p.ID, Quantity: -4}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative delivery quantity")

	in := dto.CreateOperationRequest{Reference: "WH/IN/0042", Type: entity.OperationReceipt, ScheduleDate: "2024-10-25"}
	_, err = f.ops.Create(ctx, "", in)
	require.NoError(t, err)
	_, err = f.ops.Create(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSetStatus_ReceiptDoneAppliesStockOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "NC-X1", 0, 10)

	op := f.create(t, entity.OperationReceipt, entity.StatusReady, dto.OperationItemRequest{ProductID: p.ID, Quantity: 50})

	done, err := f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, done.Status)
	assert.NotNil(t, done.DoneAt)
	assert.Equal(t, 50, done.Items[0].DoneQuantity)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 50, got.Stock)
	assert.Equal(t, entity.StockStatusInStock, got.Status)

	// a second validate click is a no-op
	_, err = f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	require.NoError(t, err)
	assert.Equal(t, 50, f.stockOf(t, p.ID).Stock)

	moves, err := f.moves.List(ctx, dto.StockMovementFilter{})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, 50, moves[0].Quantity)
	assert.Equal(t, op.Reference, moves[0].Reference)
	assert.Equal(t, entity.StatusDone, moves[0].Status)
}

func TestSetStatus_DeliveryUsesDoneQuantityAndDerivesStatus(t *testing.T) {
	f := newFixture()
	p := f.product(t, "NC-X1", 20, 10)

	op := f.create(t, entity.OperationDelivery, entity.StatusReady,
		dto.OperationItemRequest{ProductID: p.ID, Quantity: 15, DoneQuantity: 12})

	_, err := f.ops.SetStatus(context.Background(), op.ID, entity.StatusDone, "")
	require.NoError(t, err)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 8, got.Stock)
	assert.Equal(t, entity.StockStatusLowStock, got.Status)
}

func TestSetStatus_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.product(t, "A-1", 100, 0)
	b := f.product(t, "B-1", 3, 0)

	op := f.create(t, entity.OperationDelivery, entity.StatusReady,
		dto.OperationItemRequest{ProductID: a.ID, Quantity: 10},
		dto.OperationItemRequest{ProductID: b.ID, Quantity: 5},
	)

	_, err := f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 100, f.stockOf(t, a.ID).Stock, "first item must be rolled back")
	assert.Equal(t, 3, f.stockOf(t, b.ID).Stock)

	reloaded, err := f.ops.Get(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, reloaded.Status)

	moves, err := f.store.Movements().List(ctx, repository.StockMovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestSetStatus_TransferKeepsStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "NC-X1", 30, 5)
	op := f.create(t, entity.OperationTransfer, entity.StatusReady, dto.OperationItemRequest{ProductID: p.ID, Quantity: 10})

	_, err := f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	require.NoError(t, err)
	assert.Equal(t, 30, f.stockOf(t, p.ID).Stock)

	moves, err := f.moves.List(ctx, dto.StockMovementFilter{Type: entity.OperationTransfer})
	require.NoError(t, err)
	assert.Len(t, moves, 1)
}

func TestSetStatus_AdjustmentSigned(t *testing.T) {
	f := newFixture()
	p := f.product(t, "NC-X1", 30, 5)
	op := f.create(t, entity.OperationAdjustment, entity.StatusReady, dto.OperationItemRequest{ProductID: p.ID, Quantity: -2})

	_, err := f.ops.SetStatus(context.Background(), op.ID, entity.StatusDone, "")
	require.NoError(t, err)
	assert.Equal(t, 28, f.stockOf(t, p.ID).Stock)
}

func TestSetStatus_TransitionErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.product(t, "NC-X1", 30, 5)
	op := f.create(t, entity.OperationReceipt, "", dto.OperationItemRequest{ProductID: p.ID, Quantity: 1})

	_, err := f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Draft cannot jump to Done")

	_, err = f.ops.SetStatus(ctx, op.ID, "Archived", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ops.SetStatus(ctx, uuid.NewString(), entity.StatusReady, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cancelled, err := f.ops.SetStatus(ctx, op.ID, entity.StatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)

	_, err = f.ops.SetStatus(ctx, op.ID, entity.StatusReady, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Cancelled is terminal")
}

func TestList_FiltersAndOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, d := range []string{"2024-10-20", "2024-10-26", "2024-10-23"} {
		_, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{Type: entity.OperationReceipt, ScheduleDate: d, Contact: "Acme Corp"})
		require.NoError(t, err)
	}
	_, err := f.ops.Create(ctx, "", dto.CreateOperationRequest{Type: entity.OperationDelivery, ScheduleDate: "2024-10-21", Contact: "Globex"})
	require.NoError(t, err)

	list, err := f.ops.List(ctx, dto.OperationFilter{Type: entity.OperationReceipt})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-10-26", list[0].ScheduleDate)
	assert.Equal(t, "2024-10-20", list[2].ScheduleDate)

	list, err = f.ops.List(ctx, dto.OperationFilter{Q: "globex"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "WH/OUT/0001", list[0].Reference)

	list, err = f.ops.List(ctx, dto.OperationFilter{Q: "wh/in"})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestMovementSetStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	m := &entity.StockMovement{
		ID: uuid.NewString(), Type: entity.OperationReceipt, ReferenceNumber: "WH/IN/0001",
		ProductName: "NanoTech Chipset X1", SKU: "NC-X1", Quantity: 50, Status: entity.StatusReady,
		Timestamp: time.Date(2024, 10, 24, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, f.store.Movements().Create(ctx, m))

	res, err := f.moves.SetStatus(ctx, m.ID, entity.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, res.Status)
	assert.Equal(t, 50, res.Quantity)
	assert.Equal(t, "2024-10-24", res.Date)
	assert.Equal(t, "09:30", res.Time)

	_, err = f.moves.SetStatus(ctx, m.ID, "Shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.moves.SetStatus(ctx, uuid.NewString(), entity.StatusDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplenishmentList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	low := f.product(t, "LOW-1", 4, 10)
	out := f.product(t, "OUT-1", 0, 6)
	f.product(t, "OK-1", 50, 10)
	for _, p := range []*entity.Product{low, out} {
		p.Status = entity.StockStatusLowStock
		if p.Stock == 0 {
			p.Status = entity.StockStatusOutOfStock
		}
		require.NoError(t, f.store.Products().Update(ctx, p))
	}

	list, err := appinv.NewReplenishmentUseCase(f.store.Products()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "OUT-1", list[0].SKU)
	assert.Equal(t, 9, list[0].SuggestedQty)
	assert.Equal(t, "LOW-1", list[1].SKU)
	assert.Equal(t, 11, list[1].SuggestedQty)
}

// lockRecorder records the order in which product rows are locked.
type lockRecorder struct {
	repository.ProductRepository
	mu     *sync.Mutex
	locked *[]string
}

func (r lockRecorder) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	*r.locked = append(*r.locked, id)
	r.mu.Unlock()
	return r.ProductRepository.GetByIDForUpdate(ctx, id)
}

type recordingRunner struct {
	inner  appinv.TxRunner
	mu     sync.Mutex
	locked []string
}

func (r *recordingRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return r.inner.Run(ctx, func(p repository.ProductRepository, o repository.OperationRepository, m repository.StockMovementRepository) error {
		return fn(lockRecorder{ProductRepository: p, mu: &r.mu, locked: &r.locked}, o, m)
	})
}

func TestSetStatus_LocksProductsInIDOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.product(t, "A-1", 10, 0)
	b := f.product(t, "B-1", 10, 0)
	lo, hi := a, b
	if hi.ID < lo.ID {
		lo, hi = hi, lo
	}

	runner := &recordingRunner{inner: memory.NewTxRunner(f.store)}
	ops := appinv.NewOperationUseCase(runner, f.store.Operations(), f.store.Products(), zerolog.Nop())

	op, err := ops.Create(ctx, "", dto.CreateOperationRequest{
		Type: entity.OperationReceipt, Status: entity.StatusReady, ScheduleDate: "2024-10-25",
		Items: []dto.OperationItemRequest{
			{ProductID: hi.ID, Quantity: 5},
			{ProductID: lo.ID, Quantity: 2},
			{ProductID: hi.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	_, err = ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
	require.NoError(t, err)

	assert.Equal(t, []string{lo.ID, hi.ID}, runner.locked, "each product locked once, ascending id")
	assert.Equal(t, 18, f.stockOf(t, hi.ID).Stock, "repeated product accumulates both items")
	assert.Equal(t, 12, f.stockOf(t, lo.ID).Stock)

	moves, err := f.moves.List(ctx, dto.StockMovementFilter{})
	require.NoError(t, err)
	assert.Len(t, moves, 3)
}

func TestSetStatus_ConcurrentDoneAppliesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.product(t, "A-1", 10, 0)
	b := f.product(t, "B-1", 40, 0)

	op := f.create(t, entity.OperationDelivery, entity.StatusReady,
		dto.OperationItemRequest{ProductID: a.ID, Quantity: 4},
		dto.OperationItemRequest{ProductID: b.ID, Quantity: 15},
	)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.ops.SetStatus(ctx, op.ID, entity.StatusDone, "")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 6, f.stockOf(t, a.ID).Stock)
	assert.Equal(t, 25, f.stockOf(t, b.ID).Stock)

	moves, err := f.moves.List(ctx, dto.StockMovementFilter{})
	require.NoError(t, err)
	require.Len(t, moves, 2, "one movement per item")
	skus := []string{moves[0].SKU, moves[1].SKU}
	sort.Strings(skus)
	assert.Equal(t, []string{"A-1", "B-1"}, skus)

	got, err := f.ops.Get(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, got.Status)
}
