package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lknik/infoop-exposure-matrix/internal/classify"
	"github.com/lknik/infoop-exposure-matrix/internal/metrics"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/present"
)

// loadConcurrency bounds the parallel indicator reads of one operation-wide run.
const loadConcurrency = 8

// ClassificationService derives verdicts from the current evidence. Nothing
// it computes is persisted.
type ClassificationService struct {
	ops      *OperationService
	channels ChannelStore
	evidence *EvidenceService
	links    *LinkService
	engine   *classify.Engine
}

func NewClassificationService(ops *OperationService, channels ChannelStore, evidence *EvidenceService, links *LinkService, engine *classify.Engine) *ClassificationService {
	return &ClassificationService{ops: ops, channels: channels, evidence: evidence, links: links, engine: engine}
}

// Thresholds returns the cut-offs of the underlying engine.
func (s *ClassificationService) Thresholds() classify.Thresholds {
	return s.engine.Thresholds()
}

// ClassifyChannel evaluates a single channel.
func (s *ClassificationService) ClassifyChannel(ctx context.Context, channelID int64) (model.ClassificationResult, error) {
	ch, err := s.channels.FindChannel(ctx, channelID)
	if err != nil {
		return model.ClassificationResult{}, err
	}
	indicators, err := s.evidence.IndicatorsFor(ctx, channelID)
	if err != nil {
		return model.ClassificationResult{}, err
	}
	res := s.engine.Classify(*ch, indicators)
	metrics.ClassificationsTotal.WithLabelValues(res.Classification).Inc()
	return res, nil
}

// snapshot is an operation with every channel's indicators loaded.
type snapshot struct {
	operation  model.Operation
	channels   []model.Channel
	indicators map[int64][]model.Indicator
}

func (s *ClassificationService) load(ctx context.Context, operationID int64) (*snapshot, error) {
	op, err := s.ops.Find(ctx, operationID)
	if err != nil {
		return nil, err
	}
	channels, err := s.channels.ChannelsForOperation(ctx, operationID)
	if err != nil {
		return nil, err
	}

	sets := make([][]model.Indicator, len(channels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, ch := range channels {
		g.Go(func() error {
			inds, err := s.evidence.IndicatorsFor(gctx, ch.ID)
			if err != nil {
				return err
			}
			sets[i] = inds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{
		operation:  *op,
		channels:   channels,
		indicators: make(map[int64][]model.Indicator, len(channels)),
	}
	for i, ch := range channels {
		snap.indicators[ch.ID] = sets[i]
	}
	return snap, nil
}

func (s *ClassificationService) classifyAll(snap *snapshot) []model.ClassificationResult {
	results := make([]model.ClassificationResult, 0, len(snap.channels))
	for _, ch := range snap.channels {
		res := s.engine.Classify(ch, snap.indicators[ch.ID])
		metrics.ClassificationsTotal.WithLabelValues(res.Classification).Inc()
		results = append(results, res)
	}
	return results
}

// ClassifyOperation evaluates every channel of an operation, in channel order.
func (s *ClassificationService) ClassifyOperation(ctx context.Context, operationID int64) ([]model.ClassificationResult, error) {
	start := time.Now()
	snap, err := s.load(ctx, operationID)
	if err != nil {
		return nil, err
	}
	results := s.classifyAll(snap)
	metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	return results, nil
}

// Matrix buckets the operation's channels by classification label.
func (s *ClassificationService) Matrix(ctx context.Context, operationID int64) ([]present.Bucket, error) {
	results, err := s.ClassifyOperation(ctx, operationID)
	if err != nil {
		return nil, err
	}
	return present.Matrix(results, s.engine.Thresholds()), nil
}

// Heatmap sums the operation's indicator weights per channel and category.
func (s *ClassificationService) Heatmap(ctx context.Context, operationID int64) (present.Heatmap, error) {
	snap, err := s.load(ctx, operationID)
	if err != nil {
		return present.Heatmap{}, err
	}
	return present.BuildHeatmap(s.evidence.Registry(), snap.channels, snap.indicators), nil
}

// Graph returns the operation's channels as classified nodes joined by links.
func (s *ClassificationService) Graph(ctx context.Context, operationID int64) (present.Graph, error) {
	snap, err := s.load(ctx, operationID)
	if err != nil {
		return present.Graph{}, err
	}
	links, err := s.links.LinksFor(ctx, operationID)
	if err != nil {
		return present.Graph{}, err
	}
	return present.BuildGraph(snap.channels, links, s.classifyAll(snap)), nil
}
