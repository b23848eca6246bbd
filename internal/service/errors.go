package service

import (
	"errors"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
