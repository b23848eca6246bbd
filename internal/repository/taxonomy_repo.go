package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type TaxonomyRepo struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepo(pool *pgxpool.Pool) *TaxonomyRepo {
	return &TaxonomyRepo{pool: pool}
}

// ListIndicatorTypes returns the taxonomy in id order.
func (r *TaxonomyRepo) ListIndicatorTypes(ctx context.Context) ([]model.IndicatorType, error) {
	query := `
		SELECT id, group_type, category, subtype, default_weight, default_confidence
		FROM indicator_types
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := []model.IndicatorType{}
	for rows.Next() {
		var d model.IndicatorType
		var conf string
		if err := rows.Scan(&d.ID, &d.GroupType, &d.Category, &d.Subtype, &d.DefaultWeight, &conf); err != nil {
			return nil, err
		}
		d.DefaultConfidence = model.Confidence(conf)
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// SeedIndicatorTypes inserts defs in one batch, but only while the table is
// empty, so concurrent starts cannot seed twice.
func (r *TaxonomyRepo) SeedIndicatorTypes(ctx context.Context, defs []model.IndicatorType) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `LOCK TABLE indicator_types IN EXCLUSIVE MODE`); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM indicator_types`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return tx.Commit(ctx)
	}

	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(`
			INSERT INTO indicator_types (group_type, category, subtype, default_weight, default_confidence)
			VALUES ($1, $2, $3, $4, $5)`,
			d.GroupType, d.Category, d.Subtype, d.DefaultWeight, string(d.DefaultConfidence))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
