package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type ChannelService struct {
	ops      *OperationService
	channels ChannelStore
	evidence *EvidenceService
}

func NewChannelService(ops *OperationService, channels ChannelStore, evidence *EvidenceService) *ChannelService {
	return &ChannelService{ops: ops, channels: channels, evidence: evidence}
}

// Create adds a channel to an existing operation.
func (s *ChannelService) Create(ctx context.Context, req model.ChannelRequest) (model.Channel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Channel{}, model.Invalid("name", "channel name is required")
	}
	if req.OperationID <= 0 {
		return model.Channel{}, model.Invalid("operation_id", "operation_id is required")
	}
	if _, err := s.ops.Find(ctx, req.OperationID); err != nil {
		return model.Channel{}, err
	}

	ch, err := s.channels.CreateChannel(ctx, model.Channel{
		OperationID: req.OperationID,
		Name:        name,
		Platform:    strings.TrimSpace(req.Platform),
		URL:         strings.TrimSpace(req.URL),
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return model.Channel{}, err
	}
	s.ops.invalidate(ctx, ch.OperationID)
	return ch, nil
}

// Find returns a single channel.
func (s *ChannelService) Find(ctx context.Context, id int64) (*model.Channel, error) {
	return s.channels.FindChannel(ctx, id)
}

// Detail returns the channel with its indicators in insertion order.
func (s *ChannelService) Detail(ctx context.Context, id int64) (*model.ChannelDetail, error) {
	ch, err := s.channels.FindChannel(ctx, id)
	if err != nil {
		return nil, err
	}
	indicators, err := s.evidence.IndicatorsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.ChannelDetail{Channel: *ch, Indicators: indicators}, nil
}

// Delete removes the channel, its indicators and every link touching it.
func (s *ChannelService) Delete(ctx context.Context, id int64) error {
	ch, err := s.channels.FindChannel(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.evidence.RemoveAllForChannel(ctx, id); err != nil {
		return fmt.Errorf("remove indicators: %w", err)
	}
	if err := s.channels.DeleteChannel(ctx, id); err != nil {
		return err
	}
	s.ops.invalidate(ctx, ch.OperationID)
	return nil
}
