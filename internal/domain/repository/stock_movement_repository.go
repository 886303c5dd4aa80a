package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// StockMovementFilter predicates for StockMovementRepository.List.
type StockMovementFilter struct {
	Status    string
	Type      string
	ProductID string
	Query     string // substring over reference, contact or product name
}

// StockMovementRepository persistence port for the append-only movement log.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter StockMovementFilter) ([]*entity.StockMovement, error)
	// UpdateStatus is the only mutation allowed on a movement.
	UpdateStatus(ctx context.Context, id, status string) error
}
