package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo in-memory OperationRepository.
type OperationRepo struct {
	h handle
}

func (r *OperationRepo) Create(_ context.Context, op *entity.Operation) error {
	defer r.h.write()()
	for _, o := range r.h.d.operations {
		if o.ReferenceNumber == op.ReferenceNumber {
			return fmt.Errorf("%w: reference %q already exists", domain.ErrDuplicate, op.ReferenceNumber)
		}
	}
	r.h.d.operations[op.ID] = copyOperation(*op)
	return nil
}

func (r *OperationRepo) GetByID(_ context.Context, id string) (*entity.Operation, error) {
	defer r.h.read()()
	o, ok := r.h.d.operations[id]
	if !ok {
		return nil, nil
	}
	cp := copyOperation(o)
	return &cp, nil
}

func (r *OperationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return r.GetByID(ctx, id)
}

func (r *OperationRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	defer r.h.read()()
	q := strings.TrimSpace(f.Query)
	list := make([]*entity.Operation, 0)
	for _, o := range r.h.d.operations {
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if q != "" && !containsFold(o.ReferenceNumber, q) && !containsFold(o.Contact, q) {
			continue
		}
		cp := copyOperation(o)
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].ScheduleDate.Equal(list[j].ScheduleDate) {
			return list[i].ScheduleDate.After(list[j].ScheduleDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *OperationRepo) Update(_ context.Context, op *entity.Operation) error {
	defer r.h.write()()
	old, ok := r.h.d.operations[op.ID]
	if !ok {
		return domain.ErrNotFound
	}
	old.Status = op.Status
	old.DoneAt = op.DoneAt
	old.UpdatedAt = op.UpdatedAt
	items := make([]entity.OperationItem, len(old.Items))
	copy(items, old.Items)
	for i := range items {
		if i < len(op.Items) {
			items[i].DoneQuantity = op.Items[i].DoneQuantity
		}
	}
	old.Items = items
	r.h.d.operations[op.ID] = old
	return nil
}

func (r *OperationRepo) NextReferenceSeq(_ context.Context, prefix string) (int64, error) {
	defer r.h.write()()
	r.h.d.seqs[prefix]++
	return r.h.d.seqs[prefix], nil
}

func (r *OperationRepo) ReferenceExists(_ context.Context, reference string) (bool, error) {
	defer r.h.read()()
	for _, o := range r.h.d.operations {
		if o.ReferenceNumber == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *OperationRepo) Count(_ context.Context) (int, error) {
	defer r.h.read()()
	return len(r.h.d.operations), nil
}

func copyOperation(o entity.Operation) entity.Operation {
	if o.Items != nil {
		o.Items = append([]entity.OperationItem(nil), o.Items...)
	}
	if o.DoneAt != nil {
		t := *o.DoneAt
		o.DoneAt = &t
	}
	return o
}
