package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, operation_id, type, reference_number, product_id, product_name, sku, quantity,
	location_from, location_to, contact, status, created_by, timestamp`

// StockMovementRepo StockMovementRepository over PostgreSQL (pool or tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the movement adapter. Pass a pool or a tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appends a movement.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, nullable(m.OperationID), m.Type, m.ReferenceNumber, nullable(m.ProductID), m.ProductName, m.SKU, m.Quantity,
		m.LocationFrom, m.LocationTo, m.Contact, m.Status, nullable(m.CreatedBy), m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID returns the movement or nil.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	if !isUUID(id) {
		return nil, nil
	}
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List filters movements and returns them newest first.
func (r *StockMovementRepo) List(ctx context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.Type != "" {
		where = append(where, "type = "+arg(f.Type))
	}
	if f.ProductID != "" {
		if !isUUID(f.ProductID) {
			return []*entity.StockMovement{}, nil
		}
		where = append(where, "product_id = "+arg(f.ProductID))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg(containsPattern(q))
		where = append(where, fmt.Sprintf(
			`(reference_number ILIKE %[1]s ESCAPE '\' OR contact ILIKE %[1]s ESCAPE '\' OR product_name ILIKE %[1]s ESCAPE '\')`, p))
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateStatus changes only the status column.
func (r *StockMovementRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `UPDATE stock_movements SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update stock movement status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m                               entity.StockMovement
		operationID, productID, creator *string
	)
	err := row.Scan(
		&m.ID, &operationID, &m.Type, &m.ReferenceNumber, &productID, &m.ProductName, &m.SKU, &m.Quantity,
		&m.LocationFrom, &m.LocationTo, &m.Contact, &m.Status, &creator, &m.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	m.OperationID = derefString(operationID)
	m.ProductID = derefString(productID)
	m.CreatedBy = derefString(creator)
	return &m, nil
}
