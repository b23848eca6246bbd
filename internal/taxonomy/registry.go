// Package taxonomy holds the indicator vocabulary: a group -> category ->
// subtype hierarchy where each subtype carries a default weight and confidence.
package taxonomy

import (
	"time"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

// Registry is a read-only view of the indicator taxonomy, loaded once.
// All filters use exact string equality; misses return empty slices.
type Registry struct {
	defs []model.IndicatorType
	byID map[int64]int
}

// NewRegistry builds a registry from defs, preserving their order.
func NewRegistry(defs []model.IndicatorType) *Registry {
	r := &Registry{
		defs: make([]model.IndicatorType, len(defs)),
		byID: make(map[int64]int, len(defs)),
	}
	copy(r.defs, defs)
	for i, d := range r.defs {
		r.byID[d.ID] = i
	}
	return r
}

// List returns every definition in load order.
func (r *Registry) List() []model.IndicatorType {
	out := make([]model.IndicatorType, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Get returns the definition with the given id.
func (r *Registry) Get(id int64) (model.IndicatorType, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.IndicatorType{}, false
	}
	return r.defs[i], true
}

// Groups returns the distinct group types, ordered by first occurrence.
func (r *Registry) Groups() []string {
	seen := make(map[string]struct{})
	groups := []string{}
	for _, d := range r.defs {
		if _, ok := seen[d.GroupType]; ok {
			continue
		}
		seen[d.GroupType] = struct{}{}
		groups = append(groups, d.GroupType)
	}
	return groups
}

// CategoriesFor returns the distinct categories of group, ordered by first occurrence.
func (r *Registry) CategoriesFor(group string) []string {
	seen := make(map[string]struct{})
	cats := []string{}
	for _, d := range r.defs {
		if d.GroupType != group {
			continue
		}
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		cats = append(cats, d.Category)
	}
	return cats
}

// SubtypesFor returns the definitions under group and category.
func (r *Registry) SubtypesFor(group, category string) []model.IndicatorType {
	out := []model.IndicatorType{}
	for _, d := range r.defs {
		if d.GroupType == group && d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// CategoryOf resolves an indicator's (type, name) back to its taxonomy
// category. ok is false for free-text indicators with no matching subtype.
func (r *Registry) CategoryOf(ind model.Indicator) (string, bool) {
	for _, d := range r.defs {
		if d.GroupType == ind.Type && d.Subtype == ind.Name {
			return d.Category, true
		}
	}
	return "", false
}

// NewIndicator builds an indicator for channelID from def. Weight and
// confidence are copied, so later changes to def never reach the indicator.
func NewIndicator(channelID int64, def model.IndicatorType, evidence, sourceType string) model.Indicator {
	return model.Indicator{
		ChannelID:  channelID,
		Type:       def.GroupType,
		Name:       def.Subtype,
		Weight:     def.DefaultWeight,
		Confidence: def.DefaultConfidence,
		Evidence:   evidence,
		SourceType: sourceType,
		CreatedAt:  time.Now().UTC(),
	}
}
