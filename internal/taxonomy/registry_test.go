package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

func testRegistry() *Registry {
	return NewRegistry([]model.IndicatorType{
		{ID: 1, GroupType: "Official", Category: "Public affiliation", Subtype: "Self-attribution", DefaultWeight: 3, DefaultConfidence: model.ConfidenceHigh},
		{ID: 2, GroupType: "Linked", Category: "Shared infrastructure", Subtype: "IP addresses", DefaultWeight: 2, DefaultConfidence: model.ConfidenceHigh},
		{ID: 3, GroupType: "Aligned", Category: "Systematic interaction", Subtype: "Copy-pasting", DefaultWeight: 1, DefaultConfidence: model.ConfidenceMedium},
		{ID: 4, GroupType: "Linked", Category: "Hosting", Subtype: "Shared CDN", DefaultWeight: 2, DefaultConfidence: model.ConfidenceLow},
		{ID: 5, GroupType: "Linked", Category: "Shared infrastructure", Subtype: "Domain ownership", DefaultWeight: 2, DefaultConfidence: model.ConfidenceHigh},
	})
}

func TestRegistry_CategoriesForFirstOccurrenceOrder(t *testing.T) {
	r := testRegistry()
	assert.Equal(t, []string{"Shared infrastructure", "Hosting"}, r.CategoriesFor("Linked"))
}

func TestRegistry_CategoriesForUnknownGroup(t *testing.T) {
	r := testRegistry()
	got := r.CategoriesFor("Controlled")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRegistry_SubtypesFor(t *testing.T) {
	r := testRegistry()
	got := r.SubtypesFor("Linked", "Shared infrastructure")
	require.Len(t, got, 2)
	assert.Equal(t, "IP addresses", got[0].Subtype)
	assert.Equal(t, "Domain ownership", got[1].Subtype)

	assert.Empty(t, r.SubtypesFor("Linked", "shared infrastructure"), "match is case sensitive")
}

func TestRegistry_Groups(t *testing.T) {
	assert.Equal(t, []string{"Official", "Linked", "Aligned"}, testRegistry().Groups())
}

func TestRegistry_ListIsACopy(t *testing.T) {
	r := testRegistry()
	list := r.List()
	list[0].DefaultWeight = 99

	def, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, 3.0, def.DefaultWeight)
}

func TestRegistry_CategoryOf(t *testing.T) {
	r := testRegistry()

	cat, ok := r.CategoryOf(model.Indicator{Type: "Linked", Name: "IP addresses"})
	assert.True(t, ok)
	assert.Equal(t, "Shared infrastructure", cat)

	_, ok = r.CategoryOf(model.Indicator{Type: "Linked", Name: "Handwritten note"})
	assert.False(t, ok)
}

func TestNewIndicator_SnapshotsDefaults(t *testing.T) {
	def := model.IndicatorType{GroupType: "Linked", Subtype: "IP addresses", DefaultWeight: 2, DefaultConfidence: model.ConfidenceHigh}
	ind := NewIndicator(7, def, "same /24", "OSINT")

	def.DefaultWeight = 10
	def.DefaultConfidence = model.ConfidenceLow

	assert.Equal(t, int64(7), ind.ChannelID)
	assert.Equal(t, "Linked", ind.Type)
	assert.Equal(t, "IP addresses", ind.Name)
	assert.Equal(t, 2.0, ind.Weight)
	assert.Equal(t, model.ConfidenceHigh, ind.Confidence)
	assert.Equal(t, "same /24", ind.Evidence)
	assert.Equal(t, "OSINT", ind.SourceType)
}

func TestDefaultSeed(t *testing.T) {
	defs, err := DefaultSeed()
	require.NoError(t, err)
	require.Len(t, defs, 17)

	r := NewRegistry(defs)
	assert.Equal(t, []string{"Official", "Controlled", "Linked", "Aligned"}, r.Groups())
	assert.Equal(t, []string{"Systematic interaction", "Coordinated messaging", "Inauthentic media", "Historical consistency"}, r.CategoriesFor("Aligned"))
}

func TestParseSeed_RejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing subtype", "- {group: Linked, category: Hosting, weight: 1, confidence: High}"},
		{"bad confidence", "- {group: Linked, category: Hosting, subtype: CDN, weight: 1, confidence: Certain}"},
		{"not a list", "group: Linked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeed([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
