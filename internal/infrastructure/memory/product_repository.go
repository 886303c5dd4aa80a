package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo in-memory ProductRepository. SKU uniqueness mirrors the SQL constraint.
type ProductRepo struct {
	h handle
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.h.write()()
	if r.skuTaken(p.SKU, "") {
		return fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicate, p.SKU)
	}
	r.h.d.products[p.ID] = copyProduct(*p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.h.read()()
	return r.get(id), nil
}

// GetByIDForUpdate the runner already serializes transactions, so no extra lock is taken.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.h.read()()
	for _, p := range r.h.d.products {
		if p.SKU == sku {
			cp := copyProduct(p)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.h.write()()
	old, ok := r.h.d.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.SKU, p.ID) {
		return fmt.Errorf("%w: sku %q already exists", domain.ErrDuplicate, p.SKU)
	}
	updated := copyProduct(*p)
	updated.CreatedAt = old.CreatedAt
	r.h.d.products[p.ID] = updated
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int, status string) error {
	defer r.h.write()()
	p, ok := r.h.d.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	r.h.d.products[id] = p
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	defer r.h.read()()
	text := strings.TrimSpace(f.Text)
	list := make([]*entity.Product, 0)
	for _, p := range r.h.d.products {
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if text != "" && !containsFold(p.Name, text) && !containsFold(p.SKU, text) && !containsFold(p.SupplierInfo, text) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		cp := copyProduct(p)
		list = append(list, &cp)
	}
	sortProducts(list)
	return list, nil
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	defer r.h.read()()
	return len(r.h.d.products), nil
}

func (r *ProductRepo) get(id string) *entity.Product {
	p, ok := r.h.d.products[id]
	if !ok {
		return nil
	}
	cp := copyProduct(p)
	return &cp
}

func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	for id, p := range r.h.d.products {
		if p.SKU == sku && id != exceptID {
			return true
		}
	}
	return false
}

func copyProduct(p entity.Product) entity.Product {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}
