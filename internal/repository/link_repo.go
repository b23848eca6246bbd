package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type LinkRepo struct {
	pool *pgxpool.Pool
}

func NewLinkRepo(pool *pgxpool.Pool) *LinkRepo {
	return &LinkRepo{pool: pool}
}

// CreateLink inserts l and returns it with its id.
func (r *LinkRepo) CreateLink(ctx context.Context, l model.Link) (model.Link, error) {
	query := `
		INSERT INTO channel_links (operation_id, from_channel_id, to_channel_id, link_type, confidence, evidence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		l.OperationID, l.FromChannelID, l.ToChannelID, l.LinkType, string(l.Confidence), l.Evidence,
	).Scan(&l.ID, &l.CreatedAt)
	return l, err
}

// LinksForOperation returns an operation's links in insertion order.
func (r *LinkRepo) LinksForOperation(ctx context.Context, operationID int64) ([]model.Link, error) {
	query := `
		SELECT id, operation_id, from_channel_id, to_channel_id, link_type, confidence, evidence, created_at
		FROM channel_links
		WHERE operation_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, operationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		var l model.Link
		var conf string
		if err := rows.Scan(&l.ID, &l.OperationID, &l.FromChannelID, &l.ToChannelID,
			&l.LinkType, &conf, &l.Evidence, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Confidence = model.Confidence(conf)
		links = append(links, l)
	}
	return links, rows.Err()
}

// DeleteLink removes one link.
func (r *LinkRepo) DeleteLink(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM channel_links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("link %d: %w", id, model.ErrNotFound)
	}
	return nil
}
