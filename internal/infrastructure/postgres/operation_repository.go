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

var _ repository.OperationRepository = (*OperationRepo)(nil)

const operationColumns = `id, reference_number, type, status, schedule_date, contact, source_location,
	destination_location, notes, responsible, created_by, done_at, created_at, updated_at`

// OperationRepo OperationRepository over PostgreSQL. Items live in operation_items.
// Create and Update touch two tables, so callers run them inside a transaction when
// they need the pair to be atomic.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository builds the operation adapter. Pass a pool or a tx.
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

// Create inserts the operation header and its items. A taken reference maps to domain.ErrDuplicate.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	query := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		op.ID, op.ReferenceNumber, op.Type, op.Status, op.ScheduleDate, op.Contact, op.SourceLocation,
		op.DestinationLocation, op.Notes, op.Responsible, nullable(op.CreatedBy), op.DoneAt, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reference %q already exists", domain.ErrDuplicate, op.ReferenceNumber)
		}
		return fmt.Errorf("insert operation: %w", err)
	}

	for i, it := range op.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO operation_items (operation_id, line_no, product_id, product_name, sku, quantity, done_quantity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			op.ID, i, it.ProductID, it.ProductName, it.SKU, it.Quantity, it.DoneQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert operation item: %w", err)
		}
	}
	return nil
}

// GetByID returns the operation with its items, or nil.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id)
}

// GetByIDForUpdate same as GetByID but locks the operation row.
func (r *OperationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Operation, error) {
	return r.getOne(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1 FOR UPDATE`, id)
}

// List filters by type, status and a reference/contact substring. Newest schedule first.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Type != "" {
		where = append(where, "type = "+arg(f.Type))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg(containsPattern(q))
		where = append(where, fmt.Sprintf(`(reference_number ILIKE %[1]s ESCAPE '\' OR contact ILIKE %[1]s ESCAPE '\')`, p))
	}

	query := `SELECT ` + operationColumns + ` FROM operations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY schedule_date DESC, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	list := make([]*entity.Operation, 0)
	byID := make(map[string]*entity.Operation)
	ids := make([]string, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, op)
		byID[op.ID] = op
		ids = append(ids, op.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT operation_id, product_id, product_name, sku, quantity, done_quantity
		FROM operation_items WHERE operation_id = ANY($1) ORDER BY operation_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("list operation items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var opID string
		var it entity.OperationItem
		if err := itemRows.Scan(&opID, &it.ProductID, &it.ProductName, &it.SKU, &it.Quantity, &it.DoneQuantity); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		if op, ok := byID[opID]; ok {
			op.Items = append(op.Items, it)
		}
	}
	return list, itemRows.Err()
}

// Update writes status, doneAt and the done quantities of the items.
func (r *OperationRepo) Update(ctx context.Context, op *entity.Operation) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE operations SET status = $2, done_at = $3, updated_at = $4 WHERE id = $1`,
		op.ID, op.Status, op.DoneAt, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	for i, it := range op.Items {
		if _, err := r.q.Exec(ctx,
			`UPDATE operation_items SET done_quantity = $3 WHERE operation_id = $1 AND line_no = $2`,
			op.ID, i, it.DoneQuantity,
		); err != nil {
			return fmt.Errorf("update operation item: %w", err)
		}
	}
	return nil
}

// NextReferenceSeq bumps and returns the counter for prefix. The upsert is atomic per row.
func (r *OperationRepo) NextReferenceSeq(ctx context.Context, prefix string) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO reference_sequences (prefix, last_value) VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = reference_sequences.last_value + 1
		RETURNING last_value`, prefix,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next reference seq: %w", err)
	}
	return seq, nil
}

// ReferenceExists reports whether an operation already holds reference.
func (r *OperationRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM operations WHERE reference_number = $1)`, reference,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("reference exists: %w", err)
	}
	return exists, nil
}

// Count total number of operations.
func (r *OperationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM operations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}

func (r *OperationRepo) getOne(ctx context.Context, query, id string) (*entity.Operation, error) {
	if !isUUID(id) {
		return nil, nil
	}
	op, err := scanOperation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, sku, quantity, done_quantity
		FROM operation_items WHERE operation_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("get operation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OperationItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.SKU, &it.Quantity, &it.DoneQuantity); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		op.Items = append(op.Items, it)
	}
	return op, rows.Err()
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var (
		op        entity.Operation
		createdBy *string
	)
	err := row.Scan(
		&op.ID, &op.ReferenceNumber, &op.Type, &op.Status, &op.ScheduleDate, &op.Contact, &op.SourceLocation,
		&op.DestinationLocation, &op.Notes, &op.Responsible, &createdBy, &op.DoneAt, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	op.CreatedBy = derefString(createdBy)
	return &op, nil
}
