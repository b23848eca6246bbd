package present

import "github.com/lknik/infoop-exposure-matrix/internal/model"

// Graph is the node/edge payload for a force-directed layout.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a channel in the graph.
type Node struct {
	ID             int64   `json:"id"`
	Label          string  `json:"label"`
	Platform       string  `json:"platform"`
	Classification string  `json:"classification"`
	Score          float64 `json:"score"`
}

// Edge is a directed link between two channel nodes.
type Edge struct {
	ID         int64            `json:"id"`
	Source     int64            `json:"source"`
	Target     int64            `json:"target"`
	Type       string           `json:"type"`
	Confidence model.Confidence `json:"confidence"`
	Evidence   string           `json:"evidence"`
}

// BuildGraph joins channels, links and classification results. Channels
// without a result are Unclassified with score 0.
func BuildGraph(channels []model.Channel, links []model.Link, results []model.ClassificationResult) Graph {
	byChannel := make(map[int64]model.ClassificationResult, len(results))
	for _, r := range results {
		byChannel[r.ChannelID] = r
	}

	g := Graph{
		Nodes: make([]Node, 0, len(channels)),
		Edges: make([]Edge, 0, len(links)),
	}
	for _, ch := range channels {
		n := Node{ID: ch.ID, Label: ch.Name, Platform: ch.Platform, Classification: model.LabelUnclassified}
		if r, ok := byChannel[ch.ID]; ok {
			n.Classification = r.Classification
			n.Score = r.Score
		}
		g.Nodes = append(g.Nodes, n)
	}
	for _, l := range links {
		g.Edges = append(g.Edges, Edge{
			ID:         l.ID,
			Source:     l.FromChannelID,
			Target:     l.ToChannelID,
			Type:       l.LinkType,
			Confidence: l.Confidence,
			Evidence:   l.Evidence,
		})
	}
	return g
}
