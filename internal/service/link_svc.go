package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// LinkService maintains the directed link graph between an operation's channels.
// Self-links and repeated (from, to) pairs are accepted.
type LinkService struct {
	links    LinkStore
	channels ChannelStore
	ops      *OperationService
}

func NewLinkService(links LinkStore, channels ChannelStore, ops *OperationService) *LinkService {
	return &LinkService{links: links, channels: channels, ops: ops}
}

// Add stores a link after checking both endpoints belong to the operation.
func (s *LinkService) Add(ctx context.Context, req model.LinkRequest) (model.Link, error) {
	linkType := strings.TrimSpace(req.LinkType)
	if linkType == "" {
		return model.Link{}, model.Invalid("link_type", "link_type is required")
	}
	if req.Confidence != "" && !req.Confidence.Valid() {
		return model.Link{}, model.Invalid("confidence", "confidence must be High, Medium or Low")
	}
	if _, err := s.ops.Find(ctx, req.OperationID); err != nil {
		return model.Link{}, err
	}
	for _, id := range []int64{req.FromChannelID, req.ToChannelID} {
		if err := s.checkEndpoint(ctx, req.OperationID, id); err != nil {
			return model.Link{}, err
		}
	}

	return s.links.CreateLink(ctx, model.Link{
		OperationID:   req.OperationID,
		FromChannelID: req.FromChannelID,
		ToChannelID:   req.ToChannelID,
		LinkType:      linkType,
		Confidence:    req.Confidence,
		Evidence:      strings.TrimSpace(req.Evidence),
	})
}

func (s *LinkService) checkEndpoint(ctx context.Context, operationID, channelID int64) error {
	ch, err := s.channels.FindChannel(ctx, channelID)
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("channel %d: %w", channelID, model.ErrInvalidReference)
		}
		return err
	}
	if ch.OperationID != operationID {
		return fmt.Errorf("channel %d belongs to operation %d: %w", channelID, ch.OperationID, model.ErrInvalidReference)
	}
	return nil
}

// LinksFor returns an operation's links in insertion order.
func (s *LinkService) LinksFor(ctx context.Context, operationID int64) ([]model.Link, error) {
	if _, err := s.ops.Find(ctx, operationID); err != nil {
		return nil, err
	}
	return s.links.LinksForOperation(ctx, operationID)
}

// Delete removes one link. Unknown ids return model.ErrNotFound.
func (s *LinkService) Delete(ctx context.Context, id int64) error {
	return s.links.DeleteLink(ctx, id)
}
