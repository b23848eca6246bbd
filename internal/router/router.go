package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/lknik/infoop-exposure-matrix/internal/handler"
	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health    *handler.HealthHandler
	Taxonomy  *handler.TaxonomyHandler
	Operation *handler.OperationHandler
	Channel   *handler.ChannelHandler
	Indicator *handler.IndicatorHandler
	Link      *handler.LinkHandler
	Classify  *handler.ClassifyHandler
	Export    *handler.ExportHandler
	Metrics   fiber.Handler
}

// Limiters are the per-route rate limiters.
type Limiters struct {
	Classify *middleware.RateLimiter
	Report   *middleware.RateLimiter
	Export   *middleware.RateLimiter
}

// DefaultLimiters returns the production rate limits.
func DefaultLimiters() Limiters {
	return Limiters{
		Classify: middleware.NewClassifyRateLimiter(),
		Report:   middleware.NewReportRateLimiter(),
		Export:   middleware.NewExportRateLimiter(),
	}
}

// Stop ends the background sweep of every limiter.
func (l Limiters) Stop() {
	for _, rl := range []*middleware.RateLimiter{l.Classify, l.Report, l.Export} {
		rl.Stop()
	}
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, l Limiters, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics sit outside /api
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics)
	}

	api := app.Group("/api")

	// Taxonomy
	api.Get("/indicator_types", h.Taxonomy.List)
	api.Get("/indicator_types/groups", h.Taxonomy.Groups)
	api.Get("/indicator_types/categories", h.Taxonomy.Categories)

	// Operations
	api.Get("/operations", h.Operation.List)
	api.Post("/operations", h.Operation.Create)
	api.Get("/operations/:id", h.Operation.Get)
	api.Delete("/operations/:id", h.Operation.Delete)
	api.Get("/operations/:id/heatmap", l.Classify.Handler(), h.Operation.Heatmap)
	api.Get("/operations/:id/graph", l.Classify.Handler(), h.Operation.Graph)

	// Channels
	api.Post("/channels", h.Channel.Create)
	api.Get("/channels/:id", h.Channel.Get)
	api.Delete("/channels/:id", h.Channel.Delete)
	api.Get("/channels/:id/classification", l.Classify.Handler(), h.Channel.Classification)

	// Indicators
	api.Post("/indicators", h.Indicator.Create)
	api.Delete("/indicators/:id", h.Indicator.Delete)

	// Links
	api.Post("/links", h.Link.Create)
	api.Get("/links/:opId", h.Link.List)
	api.Delete("/links/:id", h.Link.Delete)

	// Classification
	api.Get("/classify/:opId", l.Classify.Handler(), h.Classify.Operation)
	api.Get("/classify/:opId/matrix", l.Classify.Handler(), h.Classify.Matrix)

	// Exports
	api.Get("/export_stix/:opId", l.Export.Handler(), h.Export.STIX)
	api.Post("/generate_report/:opId", l.Report.Handler(), h.Export.Report)
}
