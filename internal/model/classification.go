package model

// Classification labels in rule-chain priority order.
const (
	LabelOfficial     = "State Official Channel"
	LabelControlled   = "State-Controlled Outlet"
	LabelLinked       = "State-Linked Channel"
	LabelAligned      = "State-Aligned Channel"
	LabelUnclassified = "Unclassified"
)

// Labels lists every classification label in priority order.
var Labels = []string{LabelOfficial, LabelControlled, LabelLinked, LabelAligned, LabelUnclassified}

// ConfidenceTally counts indicators by confidence level.
type ConfidenceTally struct {
	High   int `json:"High"`
	Medium int `json:"Medium"`
	Low    int `json:"Low"`
}

// Total returns the number of indicators counted.
func (t ConfidenceTally) Total() int {
	return t.High + t.Medium + t.Low
}

// ClassificationResult is the derived verdict for one channel. It is
// recomputed from the current indicator set on every request.
type ClassificationResult struct {
	ChannelID      int64           `json:"channel_id"`
	ChannelName    string          `json:"channel_name"`
	Classification string          `json:"classification"`
	Score          float64         `json:"score"`
	Confidence     ConfidenceTally `json:"confidence"`
	Justification  []string        `json:"justification"`
}

// ReportRequest is the API request body for generating a narrative report.
type ReportRequest struct {
	AnalystComments string `json:"analyst_comments"`
}

// ReportResponse wraps the generated Markdown report.
type ReportResponse struct {
	Report string `json:"report"`
}
