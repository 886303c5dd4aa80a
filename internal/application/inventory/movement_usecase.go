package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockMovementUseCase read access to the movement log plus status changes.
// Movements themselves are appended by OperationUseCase and by seeding.
type StockMovementUseCase struct {
	repo repository.StockMovementRepository
}

// NewStockMovementUseCase builds the use case.
func NewStockMovementUseCase(repo repository.StockMovementRepository) *StockMovementUseCase {
	return &StockMovementUseCase{repo: repo}
}

// List newest first.
func (uc *StockMovementUseCase) List(ctx context.Context, f dto.StockMovementFilter) ([]dto.StockMovementResponse, error) {
	if f.Status != "" && !entity.IsValidOperationStatus(f.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, f.Status)
	}
	if f.Type != "" && !entity.IsValidOperationType(f.Type) {
		return nil, fmt.Errorf("%w: unknown movement type %q", domain.ErrInvalidInput, f.Type)
	}
	list, err := uc.repo.List(ctx, repository.StockMovementFilter{
		Status:    f.Status,
		Type:      f.Type,
		ProductID: f.ProductID,
		Query:     f.Q,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToStockMovementResponse(m))
	}
	return out, nil
}

// SetStatus changes only the status; quantities and references are immutable.
func (uc *StockMovementUseCase) SetStatus(ctx context.Context, id, status string) (*dto.StockMovementResponse, error) {
	if !entity.IsValidOperationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	res := ToStockMovementResponse(m)
	return &res, nil
}

// ToStockMovementResponse splits the timestamp into UTC date and HH:MM.
func ToStockMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	ts := m.Timestamp.In(time.UTC)
	return dto.StockMovementResponse{
		ID:           m.ID,
		Date:         ts.Format(dateLayout),
		Time:         ts.Format("15:04"),
		Product:      m.ProductName,
		ProductID:    m.ProductID,
		SKU:          m.SKU,
		Type:         m.Type,
		Reference:    m.ReferenceNumber,
		Quantity:     m.Quantity,
		LocationFrom: m.LocationFrom,
		LocationTo:   m.LocationTo,
		Contact:      m.Contact,
		Status:       m.Status,
	}
}
