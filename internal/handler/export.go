package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
)

type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// STIX handles GET /api/export_stix/:opId
// Serves the bundle as a JSON attachment.
func (h *ExportHandler) STIX(c fiber.Ctx) error {
	opID, ok, err := pathID(c, "opId")
	if !ok {
		return err
	}
	bundle, err := h.svc.STIX(c.Context(), opID)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}

	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=operation_%d_stix.json", opID))
	return c.JSON(bundle)
}

// Report handles POST /api/generate_report/:opId
// An empty body is accepted and treated as no analyst comments.
func (h *ExportHandler) Report(c fiber.Ctx) error {
	opID, ok, err := pathID(c, "opId")
	if !ok {
		return err
	}

	var req model.ReportRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return invalidBody(c)
		}
	}
	if msg := middleware.ValidateLength("analyst_comments", req.AnalystComments, middleware.MaxCommentsLen); msg != "" {
		return invalidField(c, msg)
	}

	report, err := h.svc.Report(c.Context(), opID, req.AnalystComments)
	if err != nil {
		return middleware.ErrorFromService(c, err)
	}
	return c.JSON(model.ReportResponse{Report: report})
}
