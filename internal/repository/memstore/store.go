// Package memstore is an in-process implementation of every service store.
// It backs STORAGE_DRIVER=memory and the service and handler tests.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Store keeps each table as a slice in insertion order.
type Store struct {
	mu sync.RWMutex

	nextID     int64
	types      []model.IndicatorType
	operations []model.Operation
	channels   []model.Channel
	indicators []model.Indicator
	links      []model.Link

	now func() time.Time
}

func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%s %d: %w", what, id, model.ErrNotFound)
}

// --- taxonomy ---

func (s *Store) ListIndicatorTypes(ctx context.Context) ([]model.IndicatorType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.types), nil
}

func (s *Store) SeedIndicatorTypes(ctx context.Context, defs []model.IndicatorType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.types) > 0 {
		return nil
	}
	for _, d := range defs {
		d.ID = s.id()
		s.types = append(s.types, d)
	}
	return nil
}

// --- operations ---

func (s *Store) CreateOperation(ctx context.Context, op model.Operation) (model.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op.ID = s.id()
	op.DateCreated = s.now()
	s.operations = append(s.operations, op)
	return op, nil
}

// ListOperations returns operations newest first.
func (s *Store) ListOperations(ctx context.Context) ([]model.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ops := slices.Clone(s.operations)
	slices.Reverse(ops)
	if ops == nil {
		ops = []model.Operation{}
	}
	return ops, nil
}

func (s *Store) FindOperation(ctx context.Context, id int64) (*model.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, op := range s.operations {
		if op.ID == id {
			return &op, nil
		}
	}
	return nil, notFound("operation", id)
}

func (s *Store) DeleteOperation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.operations, func(op model.Operation) bool { return op.ID == id })
	if i < 0 {
		return notFound("operation", id)
	}

	owned := make(map[int64]bool)
	for _, ch := range s.channels {
		if ch.OperationID == id {
			owned[ch.ID] = true
		}
	}
	s.indicators = slices.DeleteFunc(s.indicators, func(ind model.Indicator) bool { return owned[ind.ChannelID] })
	s.links = slices.DeleteFunc(s.links, func(l model.Link) bool { return l.OperationID == id })
	s.channels = slices.DeleteFunc(s.channels, func(ch model.Channel) bool { return ch.OperationID == id })
	s.operations = slices.Delete(s.operations, i, i+1)
	return nil
}

// --- channels ---

func (s *Store) CreateChannel(ctx context.Context, ch model.Channel) (model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch.ID = s.id()
	ch.CreatedAt = s.now()
	s.channels = append(s.channels, ch)
	return ch, nil
}

func (s *Store) FindChannel(ctx context.Context, id int64) (*model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.channels {
		if ch.ID == id {
			return &ch, nil
		}
	}
	return nil, notFound("channel", id)
}

func (s *Store) ChannelsForOperation(ctx context.Context, operationID int64) ([]model.Channel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Channel{}
	for _, ch := range s.channels {
		if ch.OperationID == operationID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (s *Store) DeleteChannel(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.channels, func(ch model.Channel) bool { return ch.ID == id })
	if i < 0 {
		return notFound("channel", id)
	}
	s.indicators = slices.DeleteFunc(s.indicators, func(ind model.Indicator) bool { return ind.ChannelID == id })
	s.links = slices.DeleteFunc(s.links, func(l model.Link) bool {
		return l.FromChannelID == id || l.ToChannelID == id
	})
	s.channels = slices.Delete(s.channels, i, i+1)
	return nil
}

// --- indicators ---

func (s *Store) CreateIndicator(ctx context.Context, ind model.Indicator) (model.Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ind.ID = s.id()
	ind.CreatedAt = s.now()
	s.indicators = append(s.indicators, ind)
	return ind, nil
}

func (s *Store) IndicatorsForChannel(ctx context.Context, channelID int64) ([]model.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Indicator{}
	for _, ind := range s.indicators {
		if ind.ChannelID == channelID {
			out = append(out, ind)
		}
	}
	return out, nil
}

func (s *Store) DeleteIndicator(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.indicators, func(ind model.Indicator) bool { return ind.ID == id })
	if i < 0 {
		return notFound("indicator", id)
	}
	s.indicators = slices.Delete(s.indicators, i, i+1)
	return nil
}

func (s *Store) DeleteIndicatorsForChannel(ctx context.Context, channelID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.indicators)
	s.indicators = slices.DeleteFunc(s.indicators, func(ind model.Indicator) bool { return ind.ChannelID == channelID })
	return int64(before - len(s.indicators)), nil
}

// --- links ---

func (s *Store) CreateLink(ctx context.Context, l model.Link) (model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.id()
	l.CreatedAt = s.now()
	s.links = append(s.links, l)
	return l, nil
}

func (s *Store) LinksForOperation(ctx context.Context, operationID int64) ([]model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Link{}
	for _, l := range s.links {
		if l.OperationID == operationID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) DeleteLink(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.links, func(l model.Link) bool { return l.ID == id })
	if i < 0 {
		return notFound("link", id)
	}
	s.links = slices.Delete(s.links, i, i+1)
	return nil
}
