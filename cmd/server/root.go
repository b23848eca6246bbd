package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lknik/infoop-exposure-matrix/internal/config"
	"github.com/lknik/infoop-exposure-matrix/internal/db"
	"github.com/lknik/infoop-exposure-matrix/internal/middleware"
	"github.com/lknik/infoop-exposure-matrix/internal/repository"
	"github.com/lknik/infoop-exposure-matrix/internal/repository/memstore"
	"github.com/lknik/infoop-exposure-matrix/internal/service"
	"github.com/lknik/infoop-exposure-matrix/internal/taxonomy"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fimi",
	Short: "Track FIMI operations and classify the channels behind them.",
	Long: `fimi records information-manipulation operations, the channels involved and
the evidence linking them to state actors, and classifies each channel from
that evidence. Without a subcommand it starts the HTTP API.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables take precedence)")
	rootCmd.AddCommand(serveCmd, migrateCmd, reportCmd, exportSTIXCmd)
}

// runtime is the wired application shared by every subcommand.
type runtime struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	cache    *service.CacheService
	services *service.Services
}

func (r *runtime) Close() {
	if r.cache != nil {
		_ = r.cache.Close()
	}
	if r.pool != nil {
		r.pool.Close()
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	middleware.InitLogger(cfg.LogLevel, "fimi")
	return cfg, nil
}

// bootstrap connects the configured storage, loads the taxonomy and wires
// the services. withCache is false for one-shot CLI commands.
func bootstrap(ctx context.Context, withCache bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := middleware.Logger
	rt := &runtime{cfg: cfg}

	var stores service.Stores
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on exit")
		stores = service.StoresOf(memstore.New())
	default:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		rt.pool = pool
		if err := db.Migrate(ctx, pool); err != nil {
			rt.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		stores = service.Stores{
			Taxonomy:   repository.NewTaxonomyRepo(pool),
			Operations: repository.NewOperationRepo(pool),
			Channels:   repository.NewChannelRepo(pool),
			Indicators: repository.NewIndicatorRepo(pool),
			Links:      repository.NewLinkRepo(pool),
		}
	}

	seed, err := taxonomy.LoadSeedFile(cfg.TaxonomyFile)
	if err != nil {
		rt.Close()
		return nil, err
	}
	registry, err := service.LoadTaxonomy(ctx, stores.Taxonomy, seed)
	if err != nil {
		rt.Close()
		return nil, err
	}
	logger.Info().Int("indicator_types", registry.Len()).Msg("taxonomy loaded")

	if withCache {
		rt.cache = service.NewCacheService(cfg.RedisURL, cfg.CacheTTL, logger)
	}
	rt.services = service.NewServices(stores, registry, rt.cache, cfg.Thresholds, logger)
	return rt, nil
}
