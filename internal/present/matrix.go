// Package present converts classification output into render-ready
// structures: the bucketed matrix, the weight heatmap and the link graph.
package present

import (
	"github.com/lknik/infoop-exposure-matrix/internal/classify"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Matrix cell confidence classes.
const (
	ClassHigh   = "high"
	ClassMedium = "medium"
	ClassLow    = "low"
)

// MatrixItem is one channel inside a matrix bucket.
type MatrixItem struct {
	ChannelID       int64   `json:"channel_id"`
	ChannelName     string  `json:"channel_name"`
	Score           float64 `json:"score"`
	ConfidenceClass string  `json:"confidence_class"`
}

// Bucket groups the channels that received one classification label.
type Bucket struct {
	Classification string       `json:"classification"`
	Items          []MatrixItem `json:"items"`
}

// Matrix groups results into the five fixed label buckets, in priority
// order. Empty buckets are kept. Results with an unknown label land in
// Unclassified.
func Matrix(results []model.ClassificationResult, t classify.Thresholds) []Bucket {
	buckets := make([]Bucket, len(model.Labels))
	index := make(map[string]int, len(model.Labels))
	for i, label := range model.Labels {
		buckets[i] = Bucket{Classification: label, Items: []MatrixItem{}}
		index[label] = i
	}

	for _, r := range results {
		i, ok := index[r.Classification]
		if !ok {
			i = index[model.LabelUnclassified]
		}
		buckets[i].Items = append(buckets[i].Items, MatrixItem{
			ChannelID:       r.ChannelID,
			ChannelName:     r.ChannelName,
			Score:           r.Score,
			ConfidenceClass: ConfidenceClass(r.Confidence, t),
		})
	}
	return buckets
}

// ConfidenceClass picks the colour class of a matrix cell.
func ConfidenceClass(tally model.ConfidenceTally, t classify.Thresholds) string {
	switch {
	case tally.High >= t.MatrixHighCount:
		return ClassHigh
	case tally.Medium >= t.MatrixMediumCount:
		return ClassMedium
	default:
		return ClassLow
	}
}
