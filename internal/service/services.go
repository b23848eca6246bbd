package service

import (
	"github.com/rs/zerolog"

	"github.com/lknik/infoop-exposure-matrix/internal/classify"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

// Services is the wired service graph shared by the HTTP server and the CLI.
type Services struct {
	Registry       *taxonomy.Registry
	Operations     *OperationService
	Channels       *ChannelService
	Evidence       *EvidenceService
	Links          *LinkService
	Classification *ClassificationService
	Exports        *ExportService
}

// NewServices wires every service over stores. cache may be nil.
func NewServices(stores Stores, registry *taxonomy.Registry, cache *CacheService, thresholds classify.Thresholds, logger zerolog.Logger) *Services {
	ops := NewOperationService(stores.Operations, stores.Channels, cache, logger.With().Str("component", "operations").Logger())
	evidence := NewEvidenceService(stores.Indicators, stores.Channels, registry)
	links := NewLinkService(stores.Links, stores.Channels, ops)
	classifier := NewClassificationService(ops, stores.Channels, evidence, links, classify.NewEngine(thresholds))

	return &Services{
		Registry:       registry,
		Operations:     ops,
		Channels:       NewChannelService(ops, stores.Channels, evidence),
		Evidence:       evidence,
		Links:          links,
		Classification: classifier,
		Exports:        NewExportService(classifier, links, logger.With().Str("component", "export").Logger()),
	}
}
