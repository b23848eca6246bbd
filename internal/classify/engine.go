// Package classify turns a channel's indicators into a scored verdict.
package classify

import (
	"fmt"
	"strconv"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Thresholds are the cut-offs shared by the engine and the matrix view.
type Thresholds struct {
	// High is the minimum score for State-Controlled Outlet.
	High float64
	// Mid is the minimum score for State-Linked Channel.
	Mid float64
	// MinHighConfidence is the number of High-confidence indicators
	// State-Controlled Outlet additionally requires.
	MinHighConfidence int
	// MatrixHighCount and MatrixMediumCount colour matrix cells.
	MatrixHighCount   int
	MatrixMediumCount int
}

// DefaultThresholds returns the built-in cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		High:              8,
		Mid:               6,
		MinHighConfidence: 2,
		MatrixHighCount:   2,
		MatrixMediumCount: 2,
	}
}

// Validate rejects threshold sets where the rule chain could never reach a
// label, or where an empty indicator set would score above Unclassified.
func (t Thresholds) Validate() error {
	if t.Mid <= 0 {
		return fmt.Errorf("mid threshold must be positive, got %.2f", t.Mid)
	}
	if t.Mid > t.High {
		return fmt.Errorf("mid threshold %.2f exceeds high threshold %.2f", t.Mid, t.High)
	}
	if t.MinHighConfidence < 0 || t.MatrixHighCount < 0 || t.MatrixMediumCount < 0 {
		return fmt.Errorf("confidence counts must not be negative")
	}
	return nil
}

// Verdict is the engine output for one indicator set.
type Verdict struct {
	Classification string
	Score          float64
	Confidence     model.ConfidenceTally
	Justification  []string
}

// Engine is a pure, side-effect free classifier.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine using t.
func NewEngine(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Thresholds returns the engine's cut-offs.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate aggregates indicators into a verdict:
//
//	tally   = count of indicators per confidence level (unknown levels count as Low)
//	score   = sum(weight), unclamped
//	label   = first matching rule:
//	          any Official indicator                         -> State Official Channel
//	          score >= High && tally.High >= MinHighConfidence -> State-Controlled Outlet
//	          score >= Mid                                   -> State-Linked Channel
//	          score > 0                                      -> State-Aligned Channel
//	          otherwise                                      -> Unclassified
//
// Justification has one line per indicator in input order.
func (e *Engine) Evaluate(indicators []model.Indicator) Verdict {
	v := Verdict{Justification: make([]string, 0, len(indicators))}
	official := false

	for _, ind := range indicators {
		v.Score += ind.Weight

		switch ind.Confidence {
		case model.ConfidenceHigh:
			v.Confidence.High++
		case model.ConfidenceMedium:
			v.Confidence.Medium++
		default:
			v.Confidence.Low++
		}

		if ind.Type == model.GroupOfficial {
			official = true
		}

		v.Justification = append(v.Justification, Justify(ind))
	}

	v.Classification = e.label(official, v.Score, v.Confidence)
	return v
}

func (e *Engine) label(official bool, score float64, tally model.ConfidenceTally) string {
	t := e.thresholds
	switch {
	case official:
		return model.LabelOfficial
	case score >= t.High && tally.High >= t.MinHighConfidence:
		return model.LabelControlled
	case score >= t.Mid:
		return model.LabelLinked
	case score > 0:
		return model.LabelAligned
	default:
		return model.LabelUnclassified
	}
}

// Classify evaluates indicators and wraps the verdict for ch.
func (e *Engine) Classify(ch model.Channel, indicators []model.Indicator) model.ClassificationResult {
	v := e.Evaluate(indicators)
	return model.ClassificationResult{
		ChannelID:      ch.ID,
		ChannelName:    ch.Name,
		Classification: v.Classification,
		Score:          v.Score,
		Confidence:     v.Confidence,
		Justification:  v.Justification,
	}
}

// Justify renders the human-readable justification line for one indicator.
func Justify(ind model.Indicator) string {
	return fmt.Sprintf("%s: %s (weight %s, %s confidence) — %s",
		ind.Type, ind.Name, FormatWeight(ind.Weight), ind.Confidence, ind.Evidence)
}

// FormatWeight prints a weight without trailing zeros (5, 2.5).
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
