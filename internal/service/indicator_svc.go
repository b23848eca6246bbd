package service

import (
	"context"
	"strings"

	"github.com/lknik/infoop-exposure-matrix/internal/metrics"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

// EvidenceService records and removes the indicators attached to channels.
type EvidenceService struct {
	indicators IndicatorStore
	channels   ChannelStore
	registry   *taxonomy.Registry
}

func NewEvidenceService(indicators IndicatorStore, channels ChannelStore, registry *taxonomy.Registry) *EvidenceService {
	return &EvidenceService{indicators: indicators, channels: channels, registry: registry}
}

// Registry returns the taxonomy the service resolves type ids against.
func (s *EvidenceService) Registry() *taxonomy.Registry {
	return s.registry
}

// Add attaches an indicator built from def to a channel. Weight and
// confidence are a snapshot of def's defaults.
func (s *EvidenceService) Add(ctx context.Context, channelID int64, def model.IndicatorType, evidence, sourceType string) (model.Indicator, error) {
	return s.store(ctx, taxonomy.NewIndicator(channelID, def, evidence, sourceType))
}

// Create handles an analyst submission. With a type id, the taxonomy entry
// supplies type, name and defaults, and any weight or confidence in req
// overrides them. Without one, req must carry type, name, weight and
// confidence itself.
func (s *EvidenceService) Create(ctx context.Context, req model.IndicatorRequest) (model.Indicator, error) {
	if req.ChannelID <= 0 {
		return model.Indicator{}, model.Invalid("channel_id", "channel_id is required")
	}

	var ind model.Indicator
	if req.TypeID != 0 {
		def, ok := s.registry.Get(req.TypeID)
		if !ok {
			return model.Indicator{}, model.Invalid("type_id", "unknown indicator type")
		}
		ind = taxonomy.NewIndicator(req.ChannelID, def, req.Evidence, req.SourceType)
	} else {
		if req.Weight == nil {
			return model.Indicator{}, model.Invalid("weight", "weight is required without type_id")
		}
		ind = model.Indicator{
			ChannelID:  req.ChannelID,
			Type:       req.Type,
			Name:       req.Name,
			Evidence:   req.Evidence,
			SourceType: req.SourceType,
		}
	}

	if req.Weight != nil {
		ind.Weight = *req.Weight
	}
	if req.Confidence != "" {
		ind.Confidence = req.Confidence
	}

	return s.store(ctx, ind)
}

func (s *EvidenceService) store(ctx context.Context, ind model.Indicator) (model.Indicator, error) {
	ind.Type = strings.TrimSpace(ind.Type)
	ind.Name = strings.TrimSpace(ind.Name)
	ind.Evidence = strings.TrimSpace(ind.Evidence)
	ind.SourceType = strings.TrimSpace(ind.SourceType)

	if ind.Type == "" {
		return model.Indicator{}, model.Invalid("type", "indicator type is required")
	}
	if ind.Name == "" {
		return model.Indicator{}, model.Invalid("name", "indicator name is required")
	}
	if !ind.Confidence.Valid() {
		return model.Indicator{}, model.Invalid("confidence", "confidence must be High, Medium or Low")
	}
	if _, err := s.channels.FindChannel(ctx, ind.ChannelID); err != nil {
		return model.Indicator{}, err
	}

	created, err := s.indicators.CreateIndicator(ctx, ind)
	if err != nil {
		return model.Indicator{}, err
	}
	metrics.IndicatorsCreated.WithLabelValues(created.Type).Inc()
	return created, nil
}

// IndicatorsFor returns a channel's indicators in insertion order.
func (s *EvidenceService) IndicatorsFor(ctx context.Context, channelID int64) ([]model.Indicator, error) {
	return s.indicators.IndicatorsForChannel(ctx, channelID)
}

// Delete removes one indicator. Unknown ids return model.ErrNotFound.
func (s *EvidenceService) Delete(ctx context.Context, id int64) error {
	return s.indicators.DeleteIndicator(ctx, id)
}

// RemoveAllForChannel deletes every indicator of a channel.
func (s *EvidenceService) RemoveAllForChannel(ctx context.Context, channelID int64) (int64, error) {
	return s.indicators.DeleteIndicatorsForChannel(ctx, channelID)
}
