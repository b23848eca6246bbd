package present

import (
	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

// Heatmap is a channel x category grid of summed indicator weight.
type Heatmap struct {
	Channels   []HeatmapChannel `json:"channels"`
	Categories []string         `json:"categories"`
	// Cells[i][j] is the weight of channel i in category j.
	Cells [][]float64 `json:"cells"`
	Max   float64     `json:"max"`
}

// HeatmapChannel labels a heatmap row.
type HeatmapChannel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnresolvedPrefix marks heatmap columns for indicators whose type and name
// match no taxonomy entry, keeping them apart from category columns.
const UnresolvedPrefix = "Other: "

// BuildHeatmap sums indicator weights per channel and taxonomy category.
// Columns follow registry category order, then any unresolved indicator
// types in first-seen order.
func BuildHeatmap(reg *taxonomy.Registry, channels []model.Channel, indicators map[int64][]model.Indicator) Heatmap {
	var categories []string
	col := make(map[string]int)
	addCol := func(name string) int {
		if j, ok := col[name]; ok {
			return j
		}
		col[name] = len(categories)
		categories = append(categories, name)
		return col[name]
	}

	for _, g := range reg.Groups() {
		for _, c := range reg.CategoriesFor(g) {
			addCol(c)
		}
	}

	type cell struct{ row, col int }
	sums := make(map[cell]float64)
	rows := make([]HeatmapChannel, 0, len(channels))
	for i, ch := range channels {
		rows = append(rows, HeatmapChannel{ID: ch.ID, Name: ch.Name})
		for _, ind := range indicators[ch.ID] {
			name, ok := reg.CategoryOf(ind)
			if !ok {
				name = UnresolvedPrefix + ind.Type
			}
			sums[cell{i, addCol(name)}] += ind.Weight
		}
	}

	h := Heatmap{
		Channels:   rows,
		Categories: categories,
		Cells:      make([][]float64, len(rows)),
	}
	if h.Categories == nil {
		h.Categories = []string{}
	}
	for i := range rows {
		h.Cells[i] = make([]float64, len(categories))
		for j := range categories {
			v := sums[cell{i, j}]
			h.Cells[i][j] = v
			if v > h.Max {
				h.Max = v
			}
		}
	}
	return h
}
