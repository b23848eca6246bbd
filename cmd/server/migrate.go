package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lknik/infoop-exposure-matrix/internal/config"
	"github.com/lknik/infoop-exposure-matrix/internal/db"
	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/repository"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and seed the indicator taxonomy",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.StorageDriver != config.DriverPostgres {
			return fmt.Errorf("migrate needs STORAGE_DRIVER=%s, got %s", config.DriverPostgres, cfg.StorageDriver)
		}

		pool, err := db.NewPool(ctx, cfg.DatabaseURL, middleware.Logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		seed, err := taxonomy.LoadSeedFile(cfg.TaxonomyFile)
		if err != nil {
			return err
		}
		registry, err := service.LoadTaxonomy(ctx, repository.NewTaxonomyRepo(pool), seed)
		if err != nil {
			return err
		}

		middleware.Logger.Info().Int("indicator_types", registry.Len()).Msg("schema ready")
		return nil
	},
}
