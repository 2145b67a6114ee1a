package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/external/ecdc"
	"github.com/wonny/covid-europe/internal/history"
	"github.com/wonny/covid-europe/internal/report"
	"github.com/wonny/covid-europe/pkg/config"
	"github.com/wonny/covid-europe/pkg/database"
	"github.com/wonny/covid-europe/pkg/httputil"
	"github.com/wonny/covid-europe/pkg/logger"
	"github.com/wonny/covid-europe/pkg/metrics"
	"github.com/wonny/covid-europe/pkg/redis"
)

// app wires the shared dependencies of a command run
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	redis   *redis.Client
	loader  *ecdc.Loader
	builder *report.Builder
	db      *database.DB
}

// loadConfig reads configuration and applies the global flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("env") {
		if err := config.ValidateEnv(env); err != nil {
			return nil, err
		}
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// newApp builds the loader pipeline. Redis is used when enabled.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log, metrics: metrics.New()}

	a.redis, err = redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log)
	opts := []ecdc.Option{ecdc.WithMetrics(a.metrics)}
	if a.redis.Enabled() {
		httpClient.WithRateLimiter(redis.NewRateLimiter(a.redis, "covid"), redis.ECDCRateLimit)
		opts = append(opts, ecdc.WithRemoteCache(redis.NewCache(a.redis, "covid")))
		log.Debug("Redis dataset cache enabled")
	}

	client := ecdc.NewClient(httpClient, log, cfg.ECDC.BaseURL)
	a.loader = ecdc.NewLoader(client, log, cfg.Cache.TTL, opts...)
	a.builder = report.NewBuilder(a.loader, log, report.WithMetrics(a.metrics))

	return a, nil
}

// openHistory connects to PostgreSQL and prepares the history table
func (a *app) openHistory(ctx context.Context) (*history.Repository, error) {
	if a.db == nil {
		db, err := database.New(ctx, a.cfg)
		if err != nil {
			if errors.Is(err, database.ErrNotConfigured) {
				return nil, fmt.Errorf("history requires DATABASE_URL: %w", err)
			}
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
	}

	repo := history.NewRepository(a.db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// selection returns the requested countries or the configured default
func (a *app) selection(countries []string) []string {
	if len(countries) > 0 {
		return countries
	}
	return a.cfg.DefaultCountries
}

// Close flushes metrics and releases connections
func (a *app) Close() {
	if a.cfg.MetricsEnabled {
		if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			a.log.WithError(err).Warn("Failed to write metrics")
		}
	}
	a.db.Close()
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}
