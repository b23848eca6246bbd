package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type LinkHandler struct {
	svc *service.LinkService
}

func NewLinkHandler(svc *service.LinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

// Create handles POST /api/links
func (h *LinkHandler) Create(c fiber.Ctx) error {
	var req model.LinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return invalidBody(c)
	}
	if msg := firstError(
		middleware.ValidateLength("link_type", req.LinkType, middleware.MaxLinkTypeLen),
		middleware.ValidateLength("evidence", req.Evidence, middleware.MaxEvidenceLen),
	); msg != "" {
		return invalidField(c, msg)
	}

	l, err := h.svc.Add(c.Context(), req)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(model.CreatedResponse{ID: l.ID})
}

// List handles GET /api/links/:opId
func (h *LinkHandler) List(c fiber.Ctx) error {
	opID, ok, err := pathID(c, "opId")
	if !ok {
		return err
	}
	links, err := h.svc.LinksFor(c.Context(), opID)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(links)
}

// Delete handles DELETE /api/links/:id
func (h *LinkHandler) Delete(c fiber.Ctx) error {
	id, ok, err := pathID(c, "id")
	if !ok {
		return err
	}
	if err := h.svc.Delete(c.Context(), id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return middleware.ErrorFromService(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
