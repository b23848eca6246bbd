package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type OperationHandler struct {
	svc        *service.OperationService
	classifier *service.ClassificationService
}

func NewOperationHandler(svc *service.OperationService, classifier *service.ClassificationService) *OperationHandler {
	return &OperationHandler{svc: svc, classifier: classifier}
}

// List handles GET /api/operations
func (h *OperationHandler) List(c fiber.Ctx) error {
	ops, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(ops)
}

// Create handles POST /api/operations
func (h *OperationHandler) Create(c fiber.Ctx) error {
	var req model.OperationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if msg := firstError(
		middleware.ValidateLength("name", req.Name, middleware.MaxNameLen),
		middleware.ValidateLength("suspected_actor", req.SuspectedActor, middleware.MaxNameLen),
	); msg != "" {
		return invalidField(c, msg)
	}

	op, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(model.CreatedResponse{ID: op.ID})
}

// Get handles GET /api/operations/:id
func (h *OperationHandler) Get(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	detail, err := h.svc.Detail(c.Context(), id)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(detail)
}

// Delete handles DELETE /api/operations/:id
// Unknown ids are treated as already deleted.
func (h *OperationHandler) Delete(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return middleware.ErrorFromService(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Heatmap handles GET /api/operations/:id/heatmap
func (h *OperationHandler) Heatmap(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	heatmap, err := h.classifier.Heatmap(c.Context(), id)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(heatmap)
}

// Graph handles GET /api/operations/:id/graph
func (h *OperationHandler) Graph(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	graph, err := h.classifier.Graph(c.Context(), id)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(graph)
}
