package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

type OperationService struct {
	ops      OperationStore
	channels ChannelStore
	cache    *CacheService
	logger   zerolog.Logger
}

func NewOperationService(ops OperationStore, channels ChannelStore, cache *CacheService, logger zerolog.Logger) *OperationService {
	return &OperationService{ops: ops, channels: channels, cache: cache, logger: logger}
}

// Create validates and stores a new operation.
func (s *OperationService) Create(ctx context.Context, req model.OperationRequest) (model.Operation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Operation{}, model.Invalid("name", "operation name is required")
	}
	return s.ops.CreateOperation(ctx, model.Operation{
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		SuspectedActor: strings.TrimSpace(req.SuspectedActor),
		Region:         strings.TrimSpace(req.Region),
		TimeRange:      strings.TrimSpace(req.TimeRange),
	})
}

// List returns every operation, newest first.
func (s *OperationService) List(ctx context.Context) ([]model.Operation, error) {
	return s.ops.ListOperations(ctx)
}

// Find returns a single operation without its channels.
func (s *OperationService) Find(ctx context.Context, id int64) (*model.Operation, error) {
	return s.ops.FindOperation(ctx, id)
}

// Detail returns the operation and its channels.
// Uses cache-aside: check the cache first, fall back to the store, then populate.
func (s *OperationService) Detail(ctx context.Context, id int64) (*model.OperationDetail, error) {
	if s.cache != nil {
		cached, err := s.cache.GetOperation(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Int64("operation_id", id).Msg("cache: operation get error")
		} else if cached != nil {
			var detail model.OperationDetail
			if err := json.Unmarshal(cached, &detail); err == nil {
				return &detail, nil
			}
		}
	}

	op, err := s.ops.FindOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	channels, err := s.channels.ChannelsForOperation(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.OperationDetail{Operation: *op, Channels: channels}

	if s.cache != nil {
		if err := s.cache.SetOperation(ctx, id, detail); err != nil {
			s.logger.Warn().Err(err).Int64("operation_id", id).Msg("cache: operation set error")
		}
	}
	return detail, nil
}

// Delete removes the operation with its channels, indicators and links.
func (s *OperationService) Delete(ctx context.Context, id int64) error {
	if err := s.ops.DeleteOperation(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *OperationService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateOperation(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("operation_id", id).Msg("cache: operation invalidate error")
	}
}
