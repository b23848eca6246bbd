package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

func ind(group string, weight float64, conf model.Confidence) model.Indicator {
	return model.Indicator{Type: group, Name: group + " evidence", Weight: weight, Confidence: conf, Evidence: "seen"}
}

func TestEvaluate_NoIndicators(t *testing.T) {
	v := NewEngine(DefaultThresholds()).Evaluate(nil)

	assert.Equal(t, model.LabelUnclassified, v.Classification)
	assert.Zero(t, v.Score)
	assert.Equal(t, model.ConfidenceTally{}, v.Confidence)
	assert.NotNil(t, v.Justification)
	assert.Empty(t, v.Justification)
}

func TestEvaluate_ControlledOutletScenario(t *testing.T) {
	v := NewEngine(DefaultThresholds()).Evaluate([]model.Indicator{
		ind(model.GroupLinked, 5, model.ConfidenceHigh),
		ind(model.GroupLinked, 4, model.ConfidenceHigh),
	})

	assert.Equal(t, 9.0, v.Score)
	assert.Equal(t, model.ConfidenceTally{High: 2}, v.Confidence)
	assert.Equal(t, model.LabelControlled, v.Classification)
}

func TestEvaluate_OfficialWinsRegardlessOfScore(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	tests := []struct {
		name       string
		indicators []model.Indicator
	}{
		{"official alone zero weight", []model.Indicator{ind(model.GroupOfficial, 0, model.ConfidenceLow)}},
		{"official below every threshold", []model.Indicator{ind(model.GroupOfficial, 1, model.ConfidenceLow), ind(model.GroupAligned, 1, model.ConfidenceLow)}},
		{"official with controlled-level evidence", []model.Indicator{
			ind(model.GroupLinked, 5, model.ConfidenceHigh),
			ind(model.GroupLinked, 5, model.ConfidenceHigh),
			ind(model.GroupOfficial, 1, model.ConfidenceMedium),
		}},
		{"negative weight official", []model.Indicator{ind(model.GroupOfficial, -4, model.ConfidenceHigh)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, model.LabelOfficial, e.Evaluate(tt.indicators).Classification)
		})
	}
}

func TestEvaluate_RuleChain(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	tests := []struct {
		name       string
		indicators []model.Indicator
		want       string
	}{
		{"high score but one high confidence", []model.Indicator{
			ind(model.GroupLinked, 9, model.ConfidenceHigh),
			ind(model.GroupAligned, 1, model.ConfidenceMedium),
		}, model.LabelLinked},
		{"exactly high threshold with two high", []model.Indicator{
			ind(model.GroupLinked, 4, model.ConfidenceHigh),
			ind(model.GroupLinked, 4, model.ConfidenceHigh),
		}, model.LabelControlled},
		{"exactly mid threshold", []model.Indicator{
			ind(model.GroupLinked, 3, model.ConfidenceHigh),
			ind(model.GroupLinked, 3, model.ConfidenceHigh),
		}, model.LabelLinked},
		{"just below mid", []model.Indicator{ind(model.GroupAligned, 5.5, model.ConfidenceMedium)}, model.LabelAligned},
		{"tiny positive", []model.Indicator{ind(model.GroupAligned, 0.1, model.ConfidenceLow)}, model.LabelAligned},
		{"zero weight evidence", []model.Indicator{ind(model.GroupAligned, 0, model.ConfidenceLow)}, model.LabelUnclassified},
		{"negative total", []model.Indicator{ind(model.GroupAligned, -2, model.ConfidenceLow)}, model.LabelUnclassified},
		{"unbounded manual weight", []model.Indicator{
			ind(model.GroupControlled, 40, model.ConfidenceHigh),
			ind(model.GroupControlled, 40, model.ConfidenceHigh),
		}, model.LabelControlled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Evaluate(tt.indicators).Classification)
		})
	}
}

func TestEvaluate_ScoreIsNotClamped(t *testing.T) {
	v := NewEngine(DefaultThresholds()).Evaluate([]model.Indicator{
		ind(model.GroupLinked, 25, model.ConfidenceLow),
		ind(model.GroupLinked, 30, model.ConfidenceLow),
	})
	assert.Equal(t, 55.0, v.Score)
}

func TestEvaluate_TallySumsToCount(t *testing.T) {
	indicators := []model.Indicator{
		ind(model.GroupLinked, 1, model.ConfidenceHigh),
		ind(model.GroupLinked, 1, model.ConfidenceMedium),
		ind(model.GroupLinked, 1, model.ConfidenceLow),
		ind(model.GroupLinked, 1, "Unsure"),
		ind(model.GroupLinked, 1, ""),
	}
	v := NewEngine(DefaultThresholds()).Evaluate(indicators)

	assert.Equal(t, len(indicators), v.Confidence.Total())
	assert.Equal(t, model.ConfidenceTally{High: 1, Medium: 1, Low: 3}, v.Confidence)
}

func TestEvaluate_JustificationOrderAndFormat(t *testing.T) {
	indicators := []model.Indicator{
		{Type: "Linked", Name: "IP addresses", Weight: 2, Confidence: model.ConfidenceHigh, Evidence: "same /24 block"},
		{Type: "Aligned", Name: "Copy-pasting", Weight: 1.5, Confidence: model.ConfidenceMedium, Evidence: "identical captions"},
		{Type: "Custom", Name: "Free text", Weight: 3, Confidence: model.ConfidenceLow, Evidence: ""},
	}
	v := NewEngine(DefaultThresholds()).Evaluate(indicators)

	require.Len(t, v.Justification, len(indicators))
	assert.Equal(t, "Linked: IP addresses (weight 2, High confidence) — same /24 block", v.Justification[0])
	assert.Equal(t, "Aligned: Copy-pasting (weight 1.5, Medium confidence) — identical captions", v.Justification[1])
	assert.Equal(t, "Custom: Free text (weight 3, Low confidence) — ", v.Justification[2])
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := NewEngine(DefaultThresholds())
	indicators := []model.Indicator{
		ind(model.GroupLinked, 2, model.ConfidenceHigh),
		ind(model.GroupAligned, 1, model.ConfidenceMedium),
		ind(model.GroupControlled, 3, model.ConfidenceHigh),
	}
	first := e.Evaluate(indicators)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.Evaluate(indicators))
	}
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	e := NewEngine(Thresholds{High: 20, Mid: 10, MinHighConfidence: 1})
	v := e.Evaluate([]model.Indicator{
		ind(model.GroupLinked, 5, model.ConfidenceHigh),
		ind(model.GroupLinked, 4, model.ConfidenceHigh),
	})
	assert.Equal(t, model.LabelAligned, v.Classification)
}

func TestClassify_CarriesChannel(t *testing.T) {
	res := NewEngine(DefaultThresholds()).Classify(
		model.Channel{ID: 12, Name: "@outlet"},
		[]model.Indicator{ind(model.GroupAligned, 1, model.ConfidenceMedium)},
	)
	assert.Equal(t, int64(12), res.ChannelID)
	assert.Equal(t, "@outlet", res.ChannelName)
	assert.Equal(t, model.LabelAligned, res.Classification)
	assert.Len(t, res.Justification, 1)
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{High: 5, Mid: 6}.Validate())
	assert.Error(t, Thresholds{High: 8, Mid: 6, MinHighConfidence: -1}.Validate())
	assert.Error(t, Thresholds{High: 8, Mid: 0}.Validate())
	assert.Error(t, Thresholds{High: 0, Mid: 0}.Validate())
	assert.Error(t, Thresholds{High: 8, Mid: -1}.Validate())
}

func TestEvaluate_ValidThresholdsKeepEmptySetUnclassified(t *testing.T) {
	for _, th := range []Thresholds{
		DefaultThresholds(),
		{High: 0.5, Mid: 0.1},
		{High: 1, Mid: 1, MinHighConfidence: 0},
	} {
		require.NoError(t, th.Validate())
		assert.Equal(t, model.LabelUnclassified, NewEngine(th).Evaluate(nil).Classification)
	}
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "5", FormatWeight(5))
	assert.Equal(t, "2.5", FormatWeight(2.5))
	assert.Equal(t, "-1", FormatWeight(-1))
}
