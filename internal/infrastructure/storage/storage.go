// Package storage opens the configured persistence backend and hands out its repositories.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

// Pinger health probe of the backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend repositories of one storage driver.
type Backend struct {
	Driver     string
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Operations repository.OperationRepository
	Movements  repository.StockMovementRepository
	TxRunner   inventory.TxRunner
	Pinger     Pinger // nil for memory
	close      func()
}

// Close releases the connection pool, if any.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to PostgreSQL (running pending migrations) or builds an empty in-memory store.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return Memory(), nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &Backend{
			Driver:     config.StoragePostgres,
			Users:      postgres.NewUserRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Operations: postgres.NewOperationRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			TxRunner:   postgres.NewTxRunner(pool),
			Pinger:     pool,
			close:      pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
}

// Memory returns a backend over a fresh in-memory store.
func Memory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Driver:     config.StorageMemory,
		Users:      store.Users(),
		Products:   store.Products(),
		Operations: store.Operations(),
		Movements:  store.Movements(),
		TxRunner:   memory.NewTxRunner(store),
	}
}
