package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lknik/infoop-exposure-matrix/internal/export"
)

// ExportService assembles an operation dossier and renders it.
type ExportService struct {
	classifier *ClassificationService
	links      *LinkService
	logger     zerolog.Logger
}

func NewExportService(classifier *ClassificationService, links *LinkService, logger zerolog.Logger) *ExportService {
	return &ExportService{classifier: classifier, links: links, logger: logger}
}

// Dossier loads the operation, channels, indicators and links, and classifies
// every channel.
func (s *ExportService) Dossier(ctx context.Context, operationID int64) (export.Dossier, error) {
	snap, err := s.classifier.load(ctx, operationID)
	if err != nil {
		return export.Dossier{}, err
	}
	links, err := s.links.LinksFor(ctx, operationID)
	if err != nil {
		return export.Dossier{}, err
	}
	return export.Dossier{
		Operation:  snap.operation,
		Channels:   snap.channels,
		Indicators: snap.indicators,
		Links:      links,
		Results:    s.classifier.classifyAll(snap),
	}, nil
}

// STIX exports the operation as a STIX 2.1 bundle.
func (s *ExportService) STIX(ctx context.Context, operationID int64) (export.Bundle, error) {
	d, err := s.Dossier(ctx, operationID)
	if err != nil {
		return export.Bundle{}, err
	}
	b := export.STIX(d)
	s.logger.Info().
		Int64("operation_id", operationID).
		Int("objects", len(b.Objects)).
		Msg("stix bundle exported")
	return b, nil
}

// Report renders the operation as a Markdown narrative.
func (s *ExportService) Report(ctx context.Context, operationID int64, analystComments string) (string, error) {
	d, err := s.Dossier(ctx, operationID)
	if err != nil {
		return "", err
	}
	return export.Report(d, analystComments), nil
}
