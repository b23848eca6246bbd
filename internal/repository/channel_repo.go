package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// CreateChannel inserts ch and returns it with its id.
func (r *ChannelRepo) CreateChannel(ctx context.Context, ch model.Channel) (model.Channel, error) {
	query := `
		INSERT INTO channels (operation_id, name, platform, url, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		ch.OperationID, ch.Name, ch.Platform, ch.URL, ch.Notes,
	).Scan(&ch.ID, &ch.CreatedAt)
	return ch, err
}

// FindChannel returns a single channel by id.
func (r *ChannelRepo) FindChannel(ctx context.Context, id int64) (*model.Channel, error) {
	query := `
		SELECT id, operation_id, name, platform, url, notes, created_at
		FROM channels
		WHERE id = $1`

	var ch model.Channel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.OperationID, &ch.Name, &ch.Platform, &ch.URL, &ch.Notes, &ch.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err, "channel", id)
	}
	return &ch, nil
}

// ChannelsForOperation returns an operation's channels in insertion order.
func (r *ChannelRepo) ChannelsForOperation(ctx context.Context, operationID int64) ([]model.Channel, error) {
	query := `
		SELECT id, operation_id, name, platform, url, notes, created_at
		FROM channels
		WHERE operation_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := []model.Channel{}
	for rows.Next() {
		var ch model.Channel
		if err := rows.Scan(&ch.ID, &ch.OperationID, &ch.Name, &ch.Platform,
			&ch.URL, &ch.Notes, &ch.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// DeleteChannel removes the channel and any link where it is an endpoint.
func (r *ChannelRepo) DeleteChannel(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM channel_links
		WHERE from_channel_id = $1 OR to_channel_id = $1`, id)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM channels WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("channel %d: %w", id, model.ErrNotFound)
	}

	return tx.Commit(ctx)
}
