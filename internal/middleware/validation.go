package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Field length limits enforced by the API. The schema stores these columns
// as unbounded TEXT.
const (
	MaxNameLen     = 200  // operation, channel and indicator names
	MaxLinkTypeLen = 64   // link_type
	MaxEvidenceLen = 4000 // indicator and link evidence
	MaxCommentsLen = 8000 // analyst comments passed to report generation
)

// Error codes of the JSON error envelope.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeInvalidField     = "INVALID_FIELD"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorFromService maps a service error onto the error envelope. Unknown
// errors are logged and reported as 500 without leaking their text.
func ErrorFromService(c fiber.Ctx, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrorResponse(c, fiber.StatusBadRequest, CodeInvalidField, verr.Error())
	case errors.Is(err, model.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidReference):
		return ErrorResponse(c, fiber.StatusUnprocessableEntity, CodeInvalidReference, err.Error())
	}
	Logger.Error().Err(err).Str("path", sanitizePath(c.Path())).Msg("request failed")
	return ErrorResponse(c, fiber.StatusInternalServerError, CodeInternal, "Internal server error")
}

// ParseID checks that a path parameter is a positive integer id.
func ParseID(raw, name string) (int64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, name + " is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, name + " must be a positive integer"
	}
	return id, ""
}

// ValidateLength rejects values longer than limit bytes.
func ValidateLength(field, value string, limit int) string {
	if len(value) > limit {
		return field + " must be at most " + strconv.Itoa(limit) + " characters"
	}
	return ""
}
