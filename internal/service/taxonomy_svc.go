package service

import (
	"context"
	"fmt"

	"github.com/lknik/infoop-exposure-matrix/internal/model"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

// LoadTaxonomy reads the indicator taxonomy from store, seeding it from seed
// first when the store is empty. The registry is immutable afterwards.
func LoadTaxonomy(ctx context.Context, store TaxonomyStore, seed []model.IndicatorType) (*taxonomy.Registry, error) {
	defs, err := store.ListIndicatorTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indicator types: %w", err)
	}
	if len(defs) > 0 {
		return taxonomy.NewRegistry(defs), nil
	}

	if err := store.SeedIndicatorTypes(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed indicator types: %w", err)
	}
	defs, err = store.ListIndicatorTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indicator types: %w", err)
	}
	return taxonomy.NewRegistry(defs), nil
}
