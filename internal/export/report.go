package export

import (
	"fmt"
	"strings"

	"github.com/lknik/infoop-exposure-matrix/internal/classify"
	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Report renders d as a Markdown narrative suitable for conversion to rich
// text or a paginated document.
func Report(d Dossier, analystComments string) string {
	var b strings.Builder
	op := d.Operation

	fmt.Fprintf(&b, "# FIMI Operation Report: %s\n\n", op.Name)

	b.WriteString("## Operation Overview\n\n")
	fmt.Fprintf(&b, "- **Operation Name**: %s\n", op.Name)
	fmt.Fprintf(&b, "- **Description**: %s\n", orDash(op.Description))
	fmt.Fprintf(&b, "- **Suspected Actor**: %s\n", orDash(op.SuspectedActor))
	fmt.Fprintf(&b, "- **Region**: %s\n", orDash(op.Region))
	fmt.Fprintf(&b, "- **Time Range**: %s\n\n", orDash(op.TimeRange))

	b.WriteString("## Analyst Comments\n\n")
	if strings.TrimSpace(analystComments) == "" {
		b.WriteString("_No analyst comments provided._\n\n")
	} else {
		b.WriteString(strings.TrimSpace(analystComments) + "\n\n")
	}

	b.WriteString("## Classification Summary\n\n")
	if len(d.Channels) == 0 {
		b.WriteString("_No channels recorded for this operation._\n\n")
	} else {
		b.WriteString("| Channel | Platform | Classification | Score | High | Medium | Low |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, ch := range d.Channels {
			r, _ := d.result(ch.ID)
			label := r.Classification
			if label == "" {
				label = model.LabelUnclassified
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %d | %d |\n",
				cell(ch.Name), cell(ch.Platform), label, classify.FormatWeight(r.Score),
				r.Confidence.High, r.Confidence.Medium, r.Confidence.Low)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Channels and Indicators\n\n")
	for _, ch := range d.Channels {
		fmt.Fprintf(&b, "### %s (%s)\n\n", ch.Name, orDash(ch.Platform))
		fmt.Fprintf(&b, "- **URL**: %s\n", orDash(ch.URL))
		fmt.Fprintf(&b, "- **Notes**: %s\n", orDash(ch.Notes))
		if r, ok := d.result(ch.ID); ok {
			fmt.Fprintf(&b, "- **Classification**: %s (score %s)\n", r.Classification, classify.FormatWeight(r.Score))
		}
		b.WriteString("\n")

		inds := d.Indicators[ch.ID]
		if len(inds) == 0 {
			b.WriteString("_No indicators recorded._\n\n")
			continue
		}
		b.WriteString("#### Indicators\n\n")
		for _, ind := range inds {
			fmt.Fprintf(&b, "- **[%s] %s** (Confidence: %s, Weight: %s)\n",
				ind.Type, ind.Name, ind.Confidence, classify.FormatWeight(ind.Weight))
			fmt.Fprintf(&b, "  - Evidence: %s\n", orDash(ind.Evidence))
			if ind.SourceType != "" {
				fmt.Fprintf(&b, "  - Source: %s\n", ind.SourceType)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Channel Links\n\n")
	if len(d.Links) == 0 {
		b.WriteString("_No links recorded._\n")
	}
	for _, l := range d.Links {
		fmt.Fprintf(&b, "- **%s** → **%s** (%s, %s confidence): %s\n",
			d.channelName(l.FromChannelID), d.channelName(l.ToChannelID),
			l.LinkType, orDash(string(l.Confidence)), orDash(l.Evidence))
	}

	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// cell escapes pipes so free text cannot break a Markdown table row.
func cell(s string) string {
	return strings.ReplaceAll(orDash(s), "|", `\|`)
}
