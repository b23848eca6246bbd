package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// DefaultSeed returns the built-in indicator taxonomy.
func DefaultSeed() ([]model.IndicatorType, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeedFile reads a YAML taxonomy from path. An empty path yields the
// built-in seed.
func LoadSeedFile(path string) ([]model.IndicatorType, error) {
	if path == "" {
		return DefaultSeed()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a YAML list of indicator types and validates each entry.
func ParseSeed(data []byte) ([]model.IndicatorType, error) {
	var defs []model.IndicatorType
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	for i, d := range defs {
		if d.GroupType == "" || d.Category == "" || d.Subtype == "" {
			return nil, fmt.Errorf("taxonomy entry %d: group, category and subtype are required", i)
		}
		if !d.DefaultConfidence.Valid() {
			return nil, fmt.Errorf("taxonomy entry %d: invalid confidence %q", i, d.DefaultConfidence)
		}
	}
	return defs, nil
}
