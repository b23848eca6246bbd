package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

func TestExportDossier(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "Doppelganger")
	a := f.channel(t, op.ID, "a")
	b := f.channel(t, op.ID, "b")
	f.indicator(t, a.ID, model.GroupLinked, 2, model.ConfidenceHigh)
	_, err := f.links.Add(ctx, model.LinkRequest{OperationID: op.ID, FromChannelID: a.ID, ToChannelID: b.ID, LinkType: "amplifies"})
	require.NoError(t, err)

	d, err := f.exports.Dossier(ctx, op.ID)
	require.NoError(t, err)

	assert.Equal(t, "Doppelganger", d.Operation.Name)
	assert.Len(t, d.Channels, 2)
	assert.Len(t, d.Indicators[a.ID], 1)
	assert.Empty(t, d.Indicators[b.ID])
	assert.Len(t, d.Links, 1)
	require.Len(t, d.Results, 2)
	assert.Equal(t, model.LabelAligned, d.Results[0].Classification)
}

func TestExportSTIX(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "op")
	ch := f.channel(t, op.ID, "a")
	f.indicator(t, ch.ID, model.GroupAligned, 1, model.ConfidenceLow)

	first, err := f.exports.STIX(ctx, op.ID)
	require.NoError(t, err)
	second, err := f.exports.STIX(ctx, op.ID)
	require.NoError(t, err)

	assert.Equal(t, "bundle", first.Type)
	assert.NotEmpty(t, first.Objects)
	assert.Equal(t, first, second, "export is deterministic for unchanged data")
}

func TestExportReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	op := f.operation(t, "Doppelganger")
	f.channel(t, op.ID, "mirror-site")

	md, err := f.exports.Report(ctx, op.ID, "Escalating since May.")
	require.NoError(t, err)

	assert.Contains(t, md, "# FIMI Operation Report: Doppelganger")
	assert.Contains(t, md, "Escalating since May.")
	assert.Contains(t, md, "mirror-site")
}

func TestExport_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.exports.STIX(ctx, 999)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.exports.Report(ctx, 999, "")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
