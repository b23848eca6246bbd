package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

func TestOperationCreate_RequiresName(t *testing.T) {
	f := newFixture(t)

	_, err := f.ops.Create(context.Background(), model.OperationRequest{Name: "   "})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	ops, err := f.ops.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ops, "validation failure must not store anything")
}

func TestOperationList_NewestFirst(t *testing.T) {
	f := newFixture(t)
	first := f.operation(t, "first")
	second := f.operation(t, "second")

	ops, err := f.ops.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, second.ID, ops[0].ID)
	assert.Equal(t, first.ID, ops[1].ID)
}

func TestOperationDetail_SeesNewChannels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")

	detail, err := f.ops.Detail(ctx, op.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Channels)

	f.channel(t, op.ID, "alpha")

	detail, err = f.ops.Detail(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, detail.Channels, 1, "channel create must invalidate the cached detail")
	assert.Equal(t, "alpha", detail.Channels[0].Name)
}

func TestOperationDetail_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.ops.Detail(context.Background(), 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestOperationDelete_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")
	a := f.channel(t, op.ID, "a")
	b := f.channel(t, op.ID, "b")
	f.indicator(t, a.ID, model.GroupLinked, 2, model.ConfidenceHigh)
	_, err := f.links.Add(ctx, model.LinkRequest{OperationID: op.ID, FromChannelID: a.ID, ToChannelID: b.ID, LinkType: "amplifies"})
	require.NoError(t, err)

	require.NoError(t, f.ops.Delete(ctx, op.ID))

	_, err = f.ops.Detail(ctx, op.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.channels.Find(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	inds, err := f.evidence.IndicatorsFor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inds)

	assert.ErrorIs(t, f.ops.Delete(ctx, op.ID), model.ErrNotFound)
}

func TestChannelCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")

	_, err := f.channels.Create(ctx, model.ChannelRequest{OperationID: op.ID})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = f.channels.Create(ctx, model.ChannelRequest{Name: "x"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "operation_id", verr.Field)

	_, err = f.channels.Create(ctx, model.ChannelRequest{OperationID: 999, Name: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestChannelDelete_RemovesIndicatorsAndLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")
	a := f.channel(t, op.ID, "a")
	b := f.channel(t, op.ID, "b")
	f.indicator(t, a.ID, model.GroupLinked, 2, model.ConfidenceHigh)
	f.indicator(t, a.ID, model.GroupAligned, 1, model.ConfidenceLow)
	f.indicator(t, b.ID, model.GroupAligned, 1, model.ConfidenceLow)
	_, err := f.links.Add(ctx, model.LinkRequest{OperationID: op.ID, FromChannelID: a.ID, ToChannelID: b.ID, LinkType: "amplifies"})
	require.NoError(t, err)
	_, err = f.links.Add(ctx, model.LinkRequest{OperationID: op.ID, FromChannelID: b.ID, ToChannelID: b.ID, LinkType: "self"})
	require.NoError(t, err)

	require.NoError(t, f.channels.Delete(ctx, a.ID))

	inds, err := f.evidence.IndicatorsFor(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inds)

	remaining, err := f.evidence.IndicatorsFor(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "other channels keep their indicators")

	links, err := f.links.LinksFor(ctx, op.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "self", links[0].LinkType)

	assert.ErrorIs(t, f.channels.Delete(ctx, a.ID), model.ErrNotFound)
}
