package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// notFound translates pgx.ErrNoRows into model.ErrNotFound.
func notFound(err error, what string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", what, id, model.ErrNotFound)
	}
	return err
}
