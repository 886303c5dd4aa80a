package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// OperationFilter predicates for OperationRepository.List.
type OperationFilter struct {
	Type   string
	Status string
	Query  string // substring over reference number or contact
}

// OperationRepository persistence port for Operation and its items.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Operation, error)
	List(ctx context.Context, filter OperationFilter) ([]*entity.Operation, error)
	// Update writes status, doneAt and item done quantities.
	Update(ctx context.Context, op *entity.Operation) error
	// NextReferenceSeq returns the next value of the per-prefix reference counter.
	NextReferenceSeq(ctx context.Context, prefix string) (int64, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	Count(ctx context.Context) (int, error)
}
