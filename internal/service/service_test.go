package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lknik/infoop-exposure-matrix/internal/classify"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/repository/memstore"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"))
}

type fixture struct {
	store      *memstore.Store
	registry   *taxonomy.Registry
	cache      *CacheService
	ops        *OperationService
	channels   *ChannelService
	evidence   *EvidenceService
	links      *LinkService
	classifier *ClassificationService
	exports    *ExportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memstore.New()
	seed, err := taxonomy.DefaultSeed()
	require.NoError(t, err)
	reg, err := LoadTaxonomy(ctx, store, seed)
	require.NoError(t, err)

	cache := NewCacheService("", time.Minute, zerolog.Nop())
	svcs := NewServices(StoresOf(store), reg, cache, classify.DefaultThresholds(), zerolog.Nop())

	return &fixture{
		store:      store,
		registry:   reg,
		cache:      cache,
		ops:        svcs.Operations,
		channels:   svcs.Channels,
		evidence:   svcs.Evidence,
		links:      svcs.Links,
		classifier: svcs.Classification,
		exports:    svcs.Exports,
	}
}

func (f *fixture) operation(t *testing.T, name string) model.Operation {
	t.Helper()
	op, err := f.ops.Create(context.Background(), model.OperationRequest{Name: name, SuspectedActor: "Actor X"})
	require.NoError(t, err)
	return op
}

func (f *fixture) channel(t *testing.T, operationID int64, name string) model.Channel {
	t.Helper()
	ch, err := f.channels.Create(context.Background(), model.ChannelRequest{OperationID: operationID, Name: name, Platform: "Telegram"})
	require.NoError(t, err)
	return ch
}

func (f *fixture) indicator(t *testing.T, channelID int64, group string, weight float64, conf model.Confidence) model.Indicator {
	t.Helper()
	ind, err := f.evidence.Create(context.Background(), model.IndicatorRequest{
		ChannelID:  channelID,
		Type:       group,
		Name:       group + " evidence",
		Weight:     &weight,
		Confidence: conf,
		Evidence:   "observed",
	})
	require.NoError(t, err)
	return ind
}

// typeID finds the taxonomy entry for subtype.
func (f *fixture) typeID(t *testing.T, subtype string) int64 {
	t.Helper()
	for _, def := range f.registry.List() {
		if def.Subtype == subtype {
			return def.ID
		}
	}
	t.Fatalf("no indicator type with subtype %q", subtype)
	return 0
}
