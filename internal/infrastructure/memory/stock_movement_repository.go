package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo in-memory StockMovementRepository.
type StockMovementRepo struct {
	h handle
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.h.write()()
	r.h.d.movements[m.ID] = *m
	return nil
}

func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	defer r.h.read()()
	m, ok := r.h.d.movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *StockMovementRepo) List(_ context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	defer r.h.read()()
	q := strings.TrimSpace(f.Query)
	list := make([]*entity.StockMovement, 0)
	for _, m := range r.h.d.movements {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if q != "" && !containsFold(m.ReferenceNumber, q) && !containsFold(m.Contact, q) && !containsFold(m.ProductName, q) {
			continue
		}
		m := m
		list = append(list, &m)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

func (r *StockMovementRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.h.write()()
	m, ok := r.h.d.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.Status = status
	r.h.d.movements[id] = m
	return nil
}
