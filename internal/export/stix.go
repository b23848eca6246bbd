package export

import (
	"strconv"
	"time"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/pkg/stixid"
)

const specVersion = "2.1"

// Bundle is a STIX 2.1 bundle.
type Bundle struct {
	Type    string   `json:"type"`
	ID      string   `json:"id"`
	Objects []Object `json:"objects"`
}

// Object is the subset of STIX domain and relationship object properties
// the export emits. Custom properties use the x_fimi_ prefix.
type Object struct {
	Type             string   `json:"type"`
	SpecVersion      string   `json:"spec_version"`
	ID               string   `json:"id"`
	Created          string   `json:"created"`
	Modified         string   `json:"modified"`
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	IdentityClass    string   `json:"identity_class,omitempty"`
	Objective        string   `json:"objective,omitempty"`
	Abstract         string   `json:"abstract,omitempty"`
	Content          string   `json:"content,omitempty"`
	ObjectRefs       []string `json:"object_refs,omitempty"`
	RelationshipType string   `json:"relationship_type,omitempty"`
	SourceRef        string   `json:"source_ref,omitempty"`
	TargetRef        string   `json:"target_ref,omitempty"`
	Confidence       int      `json:"confidence,omitempty"`
	Labels           []string `json:"labels,omitempty"`

	Platform       string   `json:"x_fimi_platform,omitempty"`
	URL            string   `json:"x_fimi_url,omitempty"`
	Classification string   `json:"x_fimi_classification,omitempty"`
	Score          *float64 `json:"x_fimi_score,omitempty"`
	Region         string   `json:"x_fimi_region,omitempty"`
	TimeRange      string   `json:"x_fimi_time_range,omitempty"`
	LinkType       string   `json:"x_fimi_link_type,omitempty"`
	Weight         *float64 `json:"x_fimi_weight,omitempty"`
	SourceType     string   `json:"x_fimi_source_type,omitempty"`
}

// STIXConfidence maps an analyst confidence level onto the STIX 0-100 scale
// (High/Medium/Low scale of STIX 2.1 appendix A). Unknown levels map to 0,
// which the encoder omits.
func STIXConfidence(c model.Confidence) int {
	switch c {
	case model.ConfidenceHigh:
		return 85
	case model.ConfidenceMedium:
		return 50
	case model.ConfidenceLow:
		return 15
	}
	return 0
}

// STIX builds a bundle for d. All identifiers and timestamps derive from the
// stored data, so exporting unchanged data twice yields identical output.
func STIX(d Dossier) Bundle {
	op := d.Operation
	opKey := itoa(op.ID)
	stamp := stixTime(op.DateCreated)

	objects := []Object{}
	add := func(o Object) string {
		o.SpecVersion = specVersion
		if o.Created == "" {
			o.Created = stamp
		}
		o.Modified = o.Created
		objects = append(objects, o)
		return o.ID
	}

	campaignID := add(Object{
		Type:        "campaign",
		ID:          stixid.New("campaign", opKey),
		Name:        op.Name,
		Description: op.Description,
		Objective:   "Foreign information manipulation and interference",
		Region:      op.Region,
		TimeRange:   op.TimeRange,
	})

	if op.SuspectedActor != "" {
		actorID := add(Object{
			Type: "intrusion-set",
			ID:   stixid.New("intrusion-set", op.SuspectedActor),
			Name: op.SuspectedActor,
		})
		add(Object{
			Type:             "relationship",
			ID:               stixid.New("relationship", "attributed-to", campaignID, actorID),
			RelationshipType: "attributed-to",
			SourceRef:        campaignID,
			TargetRef:        actorID,
		})
	}

	channelIDs := make(map[int64]string, len(d.Channels))
	for _, ch := range d.Channels {
		obj := Object{
			Type:          "identity",
			ID:            stixid.New("identity", opKey, itoa(ch.ID)),
			Created:       stixTime(ch.CreatedAt),
			Name:          ch.Name,
			Description:   ch.Notes,
			IdentityClass: "organization",
			Platform:      ch.Platform,
			URL:           ch.URL,
		}
		if r, ok := d.result(ch.ID); ok {
			score := r.Score
			obj.Classification = r.Classification
			obj.Score = &score
			obj.Labels = []string{r.Classification}
		}
		channelIDs[ch.ID] = add(obj)

		add(Object{
			Type:             "relationship",
			ID:               stixid.New("relationship", "related-to", channelIDs[ch.ID], campaignID),
			Created:          stixTime(ch.CreatedAt),
			RelationshipType: "related-to",
			SourceRef:        channelIDs[ch.ID],
			TargetRef:        campaignID,
		})

		for _, ind := range d.Indicators[ch.ID] {
			weight := ind.Weight
			abstract := ind.Type + ": " + ind.Name
			// content is required on notes.
			content := ind.Evidence
			if content == "" {
				content = abstract
			}
			add(Object{
				Type:       "note",
				ID:         stixid.New("note", opKey, itoa(ch.ID), itoa(ind.ID)),
				Created:    stixTime(ind.CreatedAt),
				Abstract:   abstract,
				Content:    content,
				ObjectRefs: []string{channelIDs[ch.ID]},
				Confidence: STIXConfidence(ind.Confidence),
				Labels:     []string{ind.Type},
				Weight:     &weight,
				SourceType: ind.SourceType,
			})
		}
	}

	for _, l := range d.Links {
		src, okSrc := channelIDs[l.FromChannelID]
		dst, okDst := channelIDs[l.ToChannelID]
		if !okSrc || !okDst {
			continue
		}
		add(Object{
			Type:             "relationship",
			ID:               stixid.New("relationship", opKey, "link", itoa(l.ID)),
			Created:          stixTime(l.CreatedAt),
			RelationshipType: "related-to",
			SourceRef:        src,
			TargetRef:        dst,
			Description:      l.Evidence,
			Confidence:       STIXConfidence(l.Confidence),
			LinkType:         l.LinkType,
		})
	}

	return Bundle{
		Type:    "bundle",
		ID:      stixid.New("bundle", opKey),
		Objects: objects,
	}
}

func stixTime(t time.Time) string {
	if t.IsZero() {
		t = time.Unix(0, 0)
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
