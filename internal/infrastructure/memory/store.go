// Package memory is an in-process adapter for the repository ports. It backs the
// HTTP tests and STORAGE_DRIVER=memory development runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

type data struct {
	users      map[string]entity.User
	products   map[string]entity.Product
	operations map[string]entity.Operation
	movements  map[string]entity.StockMovement
	seqs       map[string]int64
}

func newData() *data {
	return &data{
		users:      make(map[string]entity.User),
		products:   make(map[string]entity.Product),
		operations: make(map[string]entity.Operation),
		movements:  make(map[string]entity.StockMovement),
		seqs:       make(map[string]int64),
	}
}

// clone copies the maps. Slices inside entities are shared; writers always replace them.
func (d *data) clone() *data {
	c := newData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.operations {
		c.operations[k] = v
	}
	for k, v := range d.movements {
		c.movements[k] = v
	}
	for k, v := range d.seqs {
		c.seqs[k] = v
	}
	return c
}

// Store holds all collections behind one RWMutex.
type Store struct {
	mu sync.RWMutex
	d  *data
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{d: newData()}
}

// handle is what repositories operate on. Outside a transaction it locks the store;
// inside one the runner already holds the write lock and mu is nil.
type handle struct {
	mu *sync.RWMutex
	d  *data
}

func (h handle) read() func() {
	if h.mu == nil {
		return func() {}
	}
	h.mu.RLock()
	return h.mu.RUnlock
}

func (h handle) write() func() {
	if h.mu == nil {
		return func() {}
	}
	h.mu.Lock()
	return h.mu.Unlock
}

func (s *Store) handle() handle {
	return handle{mu: &s.mu, d: s.d}
}

// Users repository view.
func (s *Store) Users() *UserRepo { return &UserRepo{h: s.handle()} }

// Products repository view.
func (s *Store) Products() *ProductRepo { return &ProductRepo{h: s.handle()} }

// Operations repository view.
func (s *Store) Operations() *OperationRepo { return &OperationRepo{h: s.handle()} }

// Movements repository view.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{h: s.handle()} }

// TxRunner gives the same all-or-nothing semantics as the PostgreSQL runner:
// fn works on a snapshot that replaces the live data only when fn succeeds.
type TxRunner struct {
	s *Store
}

// NewTxRunner builds a runner over s.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run holds the store write lock for the whole callback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	operationRepo repository.OperationRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.d.clone()
	h := handle{d: snap}
	if err := fn(&ProductRepo{h: h}, &OperationRepo{h: h}, &StockMovementRepo{h: h}); err != nil {
		return err
	}
	*r.s.d = *snap
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortProducts(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].SKU < list[j].SKU
	})
}
