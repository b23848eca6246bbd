package service

import (
	"context"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Store interfaces are implemented by the Postgres repositories and by
// memstore. Find and Delete methods return model.ErrNotFound for unknown ids.

type TaxonomyStore interface {
	ListIndicatorTypes(ctx context.Context) ([]model.IndicatorType, error)
	SeedIndicatorTypes(ctx context.Context, defs []model.IndicatorType) error
}

type OperationStore interface {
	CreateOperation(ctx context.Context, op model.Operation) (model.Operation, error)
	ListOperations(ctx context.Context) ([]model.Operation, error)
	FindOperation(ctx context.Context, id int64) (*model.Operation, error)
	// DeleteOperation removes the operation with its channels, indicators and links.
	DeleteOperation(ctx context.Context, id int64) error
}

type ChannelStore interface {
	CreateChannel(ctx context.Context, ch model.Channel) (model.Channel, error)
	FindChannel(ctx context.Context, id int64) (*model.Channel, error)
	ChannelsForOperation(ctx context.Context, operationID int64) ([]model.Channel, error)
	// DeleteChannel removes the channel with its indicators and every link
	// touching it, atomically.
	DeleteChannel(ctx context.Context, id int64) error
}

type IndicatorStore interface {
	CreateIndicator(ctx context.Context, ind model.Indicator) (model.Indicator, error)
	IndicatorsForChannel(ctx context.Context, channelID int64) ([]model.Indicator, error)
	DeleteIndicator(ctx context.Context, id int64) error
	DeleteIndicatorsForChannel(ctx context.Context, channelID int64) (int64, error)
}

type LinkStore interface {
	CreateLink(ctx context.Context, l model.Link) (model.Link, error)
	LinksForOperation(ctx context.Context, operationID int64) ([]model.Link, error)
	DeleteLink(ctx context.Context, id int64) error
}

// Stores bundles one implementation of every store.
type Stores struct {
	Taxonomy   TaxonomyStore
	Operations OperationStore
	Channels   ChannelStore
	Indicators IndicatorStore
	Links      LinkStore
}

// Backend is a single value implementing every store, such as memstore.Store.
type Backend interface {
	TaxonomyStore
	OperationStore
	ChannelStore
	IndicatorStore
	LinkStore
}

// StoresOf uses b for every store.
func StoresOf(b Backend) Stores {
	return Stores{Taxonomy: b, Operations: b, Channels: b, Indicators: b, Links: b}
}
