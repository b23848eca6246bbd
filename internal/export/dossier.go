// Package export renders an operation as a STIX 2.1 bundle or a Markdown
// narrative report.
package export

import "github.com/lknik/infoop-exposure-matrix/internal/model"

// Dossier is everything known about one operation at export time.
type Dossier struct {
	Operation  model.Operation
	Channels   []model.Channel
	Indicators map[int64][]model.Indicator
	Links      []model.Link
	Results    []model.ClassificationResult
}

func (d Dossier) result(channelID int64) (model.ClassificationResult, bool) {
	for _, r := range d.Results {
		if r.ChannelID == channelID {
			return r, true
		}
	}
	return model.ClassificationResult{}, false
}

func (d Dossier) channelName(id int64) string {
	for _, ch := range d.Channels {
		if ch.ID == id {
			return ch.Name
		}
	}
	return "Channel " + itoa(id)
}
