package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type IndicatorHandler struct {
	svc *service.EvidenceService
}

func NewIndicatorHandler(svc *service.EvidenceService) *IndicatorHandler {
	return &IndicatorHandler{svc: svc}
}

// Create handles POST /api/indicators
func (h *IndicatorHandler) Create(c fiber.Ctx) error {
	var req model.IndicatorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if msg := firstError(
		middleware.ValidateLength("name", req.Name, middleware.MaxNameLen),
		middleware.ValidateLength("evidence", req.Evidence, middleware.MaxEvidenceLen),
	); msg != "" {
		return invalidField(c, msg)
	}

	ind, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(model.CreatedResponse{ID: ind.ID})
}

// Delete handles DELETE /api/indicators/:id
func (h *IndicatorHandler) Delete(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return middleware.ErrorFromService(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
