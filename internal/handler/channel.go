package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type ChannelHandler struct {
	svc        *service.ChannelService
	classifier *service.ClassificationService
}

func NewChannelHandler(svc *service.ChannelService, classifier *service.ClassificationService) *ChannelHandler {
	return &ChannelHandler{svc: svc, classifier: classifier}
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(c fiber.Ctx) error {
	var req model.ChannelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if msg := middleware.ValidateLength("name", req.Name, middleware.MaxNameLen); msg != "" {
		return invalidField(c, msg)
	}

	ch, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(model.CreatedResponse{ID: ch.ID})
}

// Get handles GET /api/channels/:id
func (h *ChannelHandler) Get(c fiber.Ctx) error {
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

// Delete handles DELETE /api/channels/:id
// Removes the channel's indicators and links too. Unknown ids are a no-op.
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return middleware.ErrorFromService(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Classification handles GET /api/channels/:id/classification
func (h *ChannelHandler) Classification(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	res, err := h.classifier.ClassifyChannel(c.Context(), id)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(res)
}
