package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type OperationRepo struct {
	pool *pgxpool.Pool
}

func NewOperationRepo(pool *pgxpool.Pool) *OperationRepo {
	return &OperationRepo{pool: pool}
}

const operationColumns = `id, name, description, suspected_actor, region, time_range, date_created`

// CreateOperation inserts op and returns it with its id and creation date.
func (r *OperationRepo) CreateOperation(ctx context.Context, op model.Operation) (model.Operation, error) {
	query := `
		INSERT INTO operations (name, description, suspected_actor, region, time_range)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date_created`

	err := r.pool.QueryRow(ctx, query,
		op.Name, op.Description, op.SuspectedActor, op.Region, op.TimeRange,
	).Scan(&op.ID, &op.DateCreated)
	return op, err
}

// ListOperations returns all operations, newest first.
func (r *OperationRepo) ListOperations(ctx context.Context) ([]model.Operation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+operationColumns+` FROM operations ORDER BY date_created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ops := []model.Operation{}
	for rows.Next() {
		var op model.Operation
		if err := rows.Scan(&op.ID, &op.Name, &op.Description, &op.SuspectedActor,
			&op.Region, &op.TimeRange, &op.DateCreated); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// FindOperation returns a single operation by id.
func (r *OperationRepo) FindOperation(ctx context.Context, id int64) (*model.Operation, error) {
	var op model.Operation
	err := r.pool.QueryRow(ctx, `SELECT `+operationColumns+` FROM operations WHERE id = $1`, id).Scan(
		&op.ID, &op.Name, &op.Description, &op.SuspectedActor, &op.Region, &op.TimeRange, &op.DateCreated,
	)
	if err != nil {
		return nil, notFound(err, "operation", id)
	}
	return &op, nil
}

// DeleteOperation removes the operation and everything tied to it atomically.
func (r *OperationRepo) DeleteOperation(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM indicators
		WHERE channel_id IN (SELECT id FROM channels WHERE operation_id = $1)`, id)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM channel_links WHERE operation_id = $1`, id)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `DELETE FROM channels WHERE operation_id = $1`, id)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("operation %d: %w", id, model.ErrNotFound)
	}

	return tx.Commit(ctx)
}
