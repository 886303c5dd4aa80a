package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

const (
	dateLayout           = "2006-01-02"
	maxReferenceAttempts = 1000
)

// OperationUseCase warehouse operations and their lifecycle.
// Completing an operation applies its items to product stock and appends the matching
// movements in the same transaction (SELECT FOR UPDATE on the operation and every product).
type OperationUseCase struct {
	txRunner      TxRunner
	operationRepo repository.OperationRepository
	productRepo   repository.ProductRepository
	log           zerolog.Logger
	now           func() time.Time
}

// NewOperationUseCase builds the use case.
func NewOperationUseCase(
	txRunner TxRunner,
	operationRepo repository.OperationRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) *OperationUseCase {
	return &OperationUseCase{
		txRunner:      txRunner,
		operationRepo: operationRepo,
		productRepo:   productRepo,
		log:           log,
		now:           time.Now,
	}
}

// List filters by type, status and a reference/contact substring, newest schedule first.
func (uc *OperationUseCase) List(ctx context.Context, f dto.OperationFilter) ([]dto.OperationResponse, error) {
	if f.Type != "" && !entity.IsValidOperationType(f.Type) {
		return nil, fmt.Errorf("%w: unknown operation type %q", domain.ErrInvalidInput, f.Type)
	}
	if f.Status != "" && !entity.IsValidOperationStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, f.Status)
	}
	list, err := uc.operationRepo.List(ctx, repository.OperationFilter{Type: f.Type, Status: f.Status, Query: f.Q})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		out = append(out, ToOperationResponse(op, now))
	}
	return out, nil
}

// Get returns one operation or domain.ErrNotFound.
func (uc *OperationUseCase) Get(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	res := ToOperationResponse(op, uc.now())
	return &res, nil
}

// GetEntity loads the operation itself (used by the slip renderer).
func (uc *OperationUseCase) GetEntity(ctx context.Context, id string) (*entity.Operation, error) {
	op, err := uc.operationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operation %s", domain.ErrNotFound, id)
	}
	return op, nil
}

// Create validates and persists a new operation. Done and Cancelled are not valid
// initial statuses: stock only moves through SetStatus.
func (uc *OperationUseCase) Create(ctx context.Context, userID string, in dto.CreateOperationRequest) (*dto.OperationResponse, error) {
	if !entity.IsValidOperationType(in.Type) {
		return nil, fmt.Errorf("%w: unknown operation type %q", domain.ErrInvalidInput, in.Type)
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	if !inventory.IsInitialStatus(status) {
		return nil, fmt.Errorf("%w: an operation cannot be created as %s", domain.ErrInvalidInput, status)
	}
	scheduled, err := time.Parse(dateLayout, in.ScheduleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduleDate must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	items := make([]entity.OperationItem, 0, len(in.Items))
	for i, it := range in.Items {
		if err := inventory.ValidateItemQuantity(in.Type, it.Quantity); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if it.DoneQuantity != 0 {
			if err := inventory.ValidateItemQuantity(in.Type, it.DoneQuantity); err != nil {
				return nil, fmt.Errorf("items[%d].doneQuantity: %w", i, err)
			}
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: items[%d]: product %s does not exist", domain.ErrInvalidInput, i, it.ProductID)
		}
		item := entity.OperationItem{
			ProductID:    product.ID,
			ProductName:  it.ProductName,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			DoneQuantity: it.DoneQuantity,
		}
		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		if item.SKU == "" {
			item.SKU = product.SKU
		}
		items = append(items, item)
	}

	now := uc.now().UTC()
	op := &entity.Operation{
		ID:                  uuid.New().String(),
		ReferenceNumber:     strings.TrimSpace(in.Reference),
		Type:                in.Type,
		Status:              status,
		ScheduleDate:        scheduled,
		Contact:             strings.TrimSpace(in.Contact),
		SourceLocation:      strings.TrimSpace(in.SourceLocation),
		DestinationLocation: strings.TrimSpace(in.DestinationLocation),
		Notes:               in.Notes,
		Responsible:         strings.TrimSpace(in.Responsible),
		Items:               items,
		CreatedBy:           userID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		operationRepo repository.OperationRepository,
		_ repository.StockMovementRepository,
	) error {
		if op.ReferenceNumber == "" {
			ref, err := nextFreeReference(ctx, operationRepo, op.Type)
			if err != nil {
				return err
			}
			op.ReferenceNumber = ref
		}
		return operationRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	res := ToOperationResponse(op, now)
	return &res, nil
}

// nextFreeReference draws from the prefix counter, skipping numbers already taken by
// hand-entered references. The skipped values stay consumed once the transaction commits.
func nextFreeReference(ctx context.Context, repo repository.OperationRepository, opType string) (string, error) {
	prefix := inventory.ReferencePrefix(opType)
	for i := 0; i < maxReferenceAttempts; i++ {
		seq, err := repo.NextReferenceSeq(ctx, prefix)
		if err != nil {
			return "", err
		}
		ref := inventory.FormatReference(prefix, seq)
		taken, err := repo.ReferenceExists(ctx, ref)
		if err != nil {
			return "", err
		}
		if !taken {
			return ref, nil
		}
	}
	return "", fmt.Errorf("%w: no free %s reference after %d attempts", domain.ErrConflict, prefix, maxReferenceAttempts)
}

// SetStatus moves an operation along the transition table. Repeating the current
// status is a no-op. Reaching Done applies stock and records the movements atomically;
// a negative resulting stock aborts everything with domain.ErrInsufficientStock.
func (uc *OperationUseCase) SetStatus(ctx context.Context, id, status, actorID string) (*dto.OperationResponse, error) {
	if !entity.IsValidOperationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	var result *entity.Operation
	completed := false
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		operationRepo repository.OperationRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		op, err := operationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("%w: operation %s", domain.ErrNotFound, id)
		}
		result = op
		if op.Status == status {
			return nil
		}
		if err := inventory.ValidateTransition(op.Status, status); err != nil {
			return err
		}

		now := uc.now().UTC()
		if status == entity.StatusDone {
			if err := uc.complete(ctx, productRepo, movementRepo, op, actorID, now); err != nil {
				return err
			}
			op.DoneAt = &now
			completed = true
		}
		op.Status = status
		op.UpdatedAt = now
		return operationRepo.Update(ctx, op)
	})
	if err != nil {
		return nil, err
	}

	if completed {
		uc.log.Info().
			Str("operation_id", result.ID).
			Str("reference", result.ReferenceNumber).
			Str("type", result.Type).
			Int("items", len(result.Items)).
			Msg("operation completed, stock applied")
	}
	res := ToOperationResponse(result, uc.now())
	return &res, nil
}

// complete applies every item of op to the locked product rows and appends one movement per item.
func (uc *OperationUseCase) complete(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	op *entity.Operation,
	actorID string,
	now time.Time,
) error {
	locked, err := lockProducts(ctx, productRepo, op)
	if err != nil {
		return err
	}
	for i := range op.Items {
		item := &op.Items[i]
		product := locked[item.ProductID]

		q := inventory.AppliedQuantity(*item)
		delta := inventory.StockDelta(op.Type, q)
		newStock := product.Stock + delta
		if newStock < 0 {
			return fmt.Errorf("%w: %s has %d, %s needs %d",
				domain.ErrInsufficientStock, product.SKU, product.Stock, op.ReferenceNumber, -delta)
		}
		if delta != 0 {
			status := inventory.DeriveStockStatus(newStock, product.MinStockLevel)
			if err := productRepo.UpdateStock(ctx, product.ID, newStock, status); err != nil {
				return err
			}
			product.Stock = newStock
			product.Status = status
		}
		item.DoneQuantity = q

		movedQty := delta
		if op.Type == entity.OperationTransfer {
			movedQty = q
		}
		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			OperationID:     op.ID,
			Type:            op.Type,
			ReferenceNumber: op.ReferenceNumber,
			ProductID:       product.ID,
			ProductName:     product.Name,
			SKU:             product.SKU,
			Quantity:        movedQty,
			LocationFrom:    op.SourceLocation,
			LocationTo:      op.DestinationLocation,
			Contact:         op.Contact,
			Status:          entity.StatusDone,
			CreatedBy:       actorID,
			Timestamp:       now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
	}
	return nil
}

// lockProducts takes the row locks for every distinct product of op in ascending id order,
// so completions sharing products queue instead of deadlocking.
func lockProducts(ctx context.Context, productRepo repository.ProductRepository, op *entity.Operation) (map[string]*entity.Product, error) {
	ids := make([]string, 0, len(op.Items))
	seen := make(map[string]bool, len(op.Items))
	for _, it := range op.Items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		product, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product %s of %s", domain.ErrNotFound, id, op.ReferenceNumber)
		}
		locked[id] = product
	}
	return locked, nil
}

// ToOperationResponse maps an operation to its wire shape; now decides isLate.
func ToOperationResponse(op *entity.Operation, now time.Time) dto.OperationResponse {
	items := make([]dto.OperationItemResponse, 0, len(op.Items))
	for _, it := range op.Items {
		items = append(items, dto.OperationItemResponse{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			DoneQuantity: it.DoneQuantity,
		})
	}
	return dto.OperationResponse{
		ID:                  op.ID,
		Reference:           op.ReferenceNumber,
		Type:                op.Type,
		Status:              op.Status,
		ScheduleDate:        op.ScheduleDate.Format(dateLayout),
		Contact:             op.Contact,
		SourceLocation:      op.SourceLocation,
		DestinationLocation: op.DestinationLocation,
		Notes:               op.Notes,
		Responsible:         op.Responsible,
		IsLate:              op.IsLate(now),
		DoneAt:              op.DoneAt,
		Items:               items,
	}
}
