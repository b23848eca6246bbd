package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type IndicatorRepo struct {
	pool *pgxpool.Pool
}

func NewIndicatorRepo(pool *pgxpool.Pool) *IndicatorRepo {
	return &IndicatorRepo{pool: pool}
}

// CreateIndicator inserts ind and returns it with its id.
func (r *IndicatorRepo) CreateIndicator(ctx context.Context, ind model.Indicator) (model.Indicator, error) {
	query := `
		INSERT INTO indicators (channel_id, type, name, weight, confidence, evidence, source_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		ind.ChannelID, ind.Type, ind.Name, ind.Weight, string(ind.Confidence), ind.Evidence, ind.SourceType,
	).Scan(&ind.ID, &ind.CreatedAt)
	return ind, err
}

// IndicatorsForChannel returns a channel's indicators in insertion order.
func (r *IndicatorRepo) IndicatorsForChannel(ctx context.Context, channelID int64) ([]model.Indicator, error) {
	query := `
		SELECT id, channel_id, type, name, weight, confidence, evidence, source_type, created_at
		FROM indicators
		WHERE channel_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	indicators := []model.Indicator{}
	for rows.Next() {
		var ind model.Indicator
		var conf string
		if err := rows.Scan(&ind.ID, &ind.ChannelID, &ind.Type, &ind.Name, &ind.Weight,
			&conf, &ind.Evidence, &ind.SourceType, &ind.CreatedAt); err != nil {
			return nil, err
		}
		ind.Confidence = model.Confidence(conf)
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}

// DeleteIndicator removes one indicator.
func (r *IndicatorRepo) DeleteIndicator(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM indicators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("indicator %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// DeleteIndicatorsForChannel removes every indicator of a channel and
// returns how many were deleted.
func (r *IndicatorRepo) DeleteIndicatorsForChannel(ctx context.Context, channelID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM indicators WHERE channel_id = $1`, channelID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
