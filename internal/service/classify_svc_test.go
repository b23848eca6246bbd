package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/present"
)

func TestClassifyChannel_NoIndicators(t *testing.T) {
	f := newFixture(t)
	ch := f.channel(t, f.operation(t, "op").ID, "D")

	res, err := f.classifier.ClassifyChannel(context.Background(), ch.ID)
	require.NoError(t, err)

	assert.Equal(t, model.LabelUnclassified, res.Classification)
	assert.Zero(t, res.Score)
	assert.Equal(t, model.ConfidenceTally{}, res.Confidence)
	assert.Empty(t, res.Justification)
	assert.Equal(t, "D", res.ChannelName)
}

func TestClassifyChannel_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.classifier.ClassifyChannel(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestClassifyChannel_ControlledScenario(t *testing.T) {
	f := newFixture(t)
	ch := f.channel(t, f.operation(t, "op").ID, "C")
	f.indicator(t, ch.ID, model.GroupLinked, 5, model.ConfidenceHigh)
	f.indicator(t, ch.ID, model.GroupLinked, 4, model.ConfidenceHigh)

	res, err := f.classifier.ClassifyChannel(context.Background(), ch.ID)
	require.NoError(t, err)

	assert.Equal(t, 9.0, res.Score)
	assert.Equal(t, model.ConfidenceTally{High: 2}, res.Confidence)
	assert.Equal(t, model.LabelControlled, res.Classification)
	assert.Len(t, res.Justification, 2)
}

func TestClassifyChannel_OfficialWins(t *testing.T) {
	f := newFixture(t)
	ch := f.channel(t, f.operation(t, "op").ID, "gov")
	f.indicator(t, ch.ID, model.GroupOfficial, 0, model.ConfidenceLow)

	res, err := f.classifier.ClassifyChannel(context.Background(), ch.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LabelOfficial, res.Classification)
}

func TestClassifyChannel_AddThenDeleteRestores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ch := f.channel(t, f.operation(t, "op").ID, "a")
	f.indicator(t, ch.ID, model.GroupLinked, 3, model.ConfidenceMedium)

	before, err := f.classifier.ClassifyChannel(ctx, ch.ID)
	require.NoError(t, err)

	added := f.indicator(t, ch.ID, model.GroupLinked, 5, model.ConfidenceHigh)
	during, err := f.classifier.ClassifyChannel(ctx, ch.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.Score, during.Score)

	require.NoError(t, f.evidence.Delete(ctx, added.ID))
	after, err := f.classifier.ClassifyChannel(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestClassifyOperation_ChannelOrder(t *testing.T) {
	f := newFixture(t)
	op := f.operation(t, "op")
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for i, name := range names {
		ch := f.channel(t, op.ID, name)
		for range i {
			f.indicator(t, ch.ID, model.GroupAligned, 1, model.ConfidenceLow)
		}
	}

	results, err := f.classifier.ClassifyOperation(context.Background(), op.ID)
	require.NoError(t, err)
	require.Len(t, results, len(names))
	for i, r := range results {
		assert.Equal(t, names[i], r.ChannelName)
		assert.Equal(t, float64(i), r.Score)
		assert.Equal(t, i, r.Confidence.Total())
		assert.Len(t, r.Justification, i)
	}
}

func TestClassifyOperation_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.classifier.ClassifyOperation(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMatrix(t *testing.T) {
	f := newFixture(t)
	op := f.operation(t, "op")
	gov := f.channel(t, op.ID, "gov")
	f.indicator(t, gov.ID, model.GroupOfficial, 3, model.ConfidenceHigh)
	f.indicator(t, gov.ID, model.GroupOfficial, 3, model.ConfidenceHigh)
	quiet := f.channel(t, op.ID, "quiet")

	buckets, err := f.classifier.Matrix(context.Background(), op.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 5)

	require.Len(t, buckets[0].Items, 1)
	assert.Equal(t, gov.ID, buckets[0].Items[0].ChannelID)
	assert.Equal(t, present.ClassHigh, buckets[0].Items[0].ConfidenceClass)
	require.Len(t, buckets[4].Items, 1)
	assert.Equal(t, quiet.ID, buckets[4].Items[0].ChannelID)
	for _, b := range buckets[1:4] {
		assert.Empty(t, b.Items)
	}
}

func TestHeatmap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")
	ch := f.channel(t, op.ID, "a")
	_, err := f.evidence.Create(ctx, model.IndicatorRequest{ChannelID: ch.ID, TypeID: f.typeID(t, "IP addresses")})
	require.NoError(t, err)
	_, err = f.evidence.Create(ctx, model.IndicatorRequest{ChannelID: ch.ID, TypeID: f.typeID(t, "Domain ownership")})
	require.NoError(t, err)

	h, err := f.classifier.Heatmap(ctx, op.ID)
	require.NoError(t, err)

	require.Len(t, h.Cells, 1)
	col := -1
	for j, c := range h.Categories {
		if c == "Shared infrastructure" {
			col = j
		}
	}
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, 4.0, h.Cells[0][col])
	assert.Equal(t, 4.0, h.Max)
}

func TestGraph(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")
	a := f.channel(t, op.ID, "a")
	b := f.channel(t, op.ID, "b")
	f.indicator(t, a.ID, model.GroupLinked, 6, model.ConfidenceMedium)
	_, err := f.links.Add(ctx, model.LinkRequest{OperationID: op.ID, FromChannelID: a.ID, ToChannelID: b.ID, LinkType: "amplifies"})
	require.NoError(t, err)

	g, err := f.classifier.Graph(ctx, op.ID)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, model.LabelLinked, g.Nodes[0].Classification)
	assert.Equal(t, model.LabelUnclassified, g.Nodes[1].Classification)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, a.ID, g.Edges[0].Source)
	assert.Equal(t, b.ID, g.Edges[0].Target)
}
