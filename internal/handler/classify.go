package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type ClassifyHandler struct {
	svc *service.ClassificationService
}

func NewClassifyHandler(svc *service.ClassificationService) *ClassifyHandler {
	return &ClassifyHandler{svc: svc}
}

// Operation handles GET /api/classify/:opId
func (h *ClassifyHandler) Operation(c fiber.Ctx) error {
	opID, ok, err := pathID(c, "opId")
	if !ok {
		return err
	}
	results, err := h.svc.ClassifyOperation(c.Context(), opID)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(results)
}

// Matrix handles GET /api/classify/:opId/matrix
func (h *ClassifyHandler) Matrix(c fiber.Ctx) error {
	opID, ok, err := pathID(c, "opId")
	if !ok {
		return err
	}
	buckets, err := h.svc.Matrix(c.Context(), opID)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(buckets)
}
