package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
)

// pathID parses the named route parameter. On failure it has already written
// the 400 response and ok is false.
func pathID(c fiber.Ctx, name string) (id int64, ok bool, err error) {
	id, errMsg := middleware.ParseID(c.Params(name), name)
	if errMsg != "" {
		return 0, false, middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidField, errMsg)
	}
	return id, true, nil
}

func invalidBody(c fiber.Ctx) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidBody, "Invalid request body")
}

func invalidField(c fiber.Ctx, msg string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidField, msg)
}

// firstError returns the first non-empty validation message.
func firstError(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}
