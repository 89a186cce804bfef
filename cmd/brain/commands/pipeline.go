package commands

import (
	"fmt"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/brain"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/fetch"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/history"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/layers"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/config"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/database"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/httputil"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/redis"
)

// pipeline bundles the wired components every command starts from.
// SSOT: component wiring happens only in initPipeline.
type pipeline struct {
	cfg    *config.Config
	log    *logger.Logger
	client *macro.Client
	agg    *brain.Aggregator
	writer *brain.Writer
	repo   *history.Repository // nil when DATABASE_URL is unset
	db     *database.DB        // nil when DATABASE_URL is unset
	redis  *redis.Client
	cache  *redis.Cache
}

// initPipeline loads config and wires the full generation pipeline.
func initPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		limiter := redis.NewRateLimiter(redisClient, "pentosh")
		httpClient = httpClient.WithRateLimiter(limiter, redis.MacroRateLimit)
	}

	client := macro.NewClient(cfg, httpClient, log)
	now := time.Now

	liquidity := layers.NewLiquidityCollector(
		fetch.LiquidityFetchers(client, log, now, cfg.MaxIndicatorAgeDays), log, now)
	crypto := layers.NewCryptoCollector(client, log, now, cfg.MaxIndicatorAgeDays)

	p := &pipeline{
		cfg:    cfg,
		log:    log,
		client: client,
		agg:    brain.NewAggregator(client, liquidity, crypto, log, now),
		writer: brain.NewWriter(cfg.OutputDir, log),
		redis:  redisClient,
		cache:  redis.NewCache(redisClient, "pentosh"),
	}

	if cfg.HistoryEnabled() {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		p.db = db
		p.repo = history.NewRepository(db, log)
	}

	return p, nil
}

// Close releases pipeline resources.
func (p *pipeline) Close() {
	if p.db != nil {
		p.db.Close()
	}
	if p.redis != nil {
		p.redis.Close()
	}
}
