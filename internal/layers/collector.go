package layers

import (
	"context"
	"sync"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/fetch"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// LiquidityCollector assembles the global-liquidity layer by fanning out
// its fetchers concurrently and scoring the result.
// SSOT: L1 assembly happens only here.
type LiquidityCollector struct {
	fetchers []fetch.Fetcher
	rules    []Rule
	logger   *logger.Logger
	now      func() time.Time
}

// NewLiquidityCollector creates an L1 collector over the given fetchers.
func NewLiquidityCollector(fetchers []fetch.Fetcher, log *logger.Logger, now func() time.Time) *LiquidityCollector {
	return &LiquidityCollector{
		fetchers: fetchers,
		rules:    DefaultMacroRules(),
		logger:   log.WithField("module", "liquidity_collector"),
		now:      now,
	}
}

// Collect runs every fetcher concurrently and assembles the layer. A run
// never fails: fetchers resolve failures to absence, and an empty layer is
// a valid result.
func (c *LiquidityCollector) Collect(ctx context.Context) contracts.LayerResult {
	c.logger.WithField("fetcher_count", len(c.fetchers)).Info("Starting global liquidity collection")

	resultCh := make(chan contracts.IndicatorValue, len(c.fetchers))

	var wg sync.WaitGroup
	for _, f := range c.fetchers {
		wg.Add(1)
		go func(f fetch.Fetcher) {
			defer wg.Done()
			resultCh <- f.Fetch(ctx)
		}(f)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	layer := contracts.NewLayerResult(contracts.LayerGlobalLiquidity, c.now())
	for v := range resultCh {
		layer.Add(v)
	}

	score := EvaluateRules(layer, c.rules)
	layer.Score = &score

	c.logger.WithFields(map[string]interface{}{
		"indicators": len(layer.Indicators),
		"score":      score.Score,
		"level":      score.Level,
	}).Info("Global liquidity collection completed")

	return layer
}

// CryptoCollector builds the flow, structure and sentiment layers from one
// consolidated snapshot call.
// SSOT: L2–L4 assembly happens only here.
type CryptoCollector struct {
	client     *macro.Client
	logger     *logger.Logger
	now        func() time.Time
	maxAgeDays int
}

// NewCryptoCollector creates a collector over the snapshot endpoint.
func NewCryptoCollector(client *macro.Client, log *logger.Logger, now func() time.Time, maxAgeDays int) *CryptoCollector {
	return &CryptoCollector{
		client:     client,
		logger:     log.WithField("module", "crypto_collector"),
		now:        now,
		maxAgeDays: maxAgeDays,
	}
}

// Collect fetches the snapshot and maps it onto the three crypto layers.
// An upstream failure yields three empty layers, never an error.
func (c *CryptoCollector) Collect(ctx context.Context, symbol string) (flows, structure, sentiment contracts.LayerResult) {
	now := c.now()
	flows = contracts.NewLayerResult(contracts.LayerCryptoFlows, now)
	structure = contracts.NewLayerResult(contracts.LayerMarketStructure, now)
	sentiment = contracts.NewLayerResult(contracts.LayerSentiment, now)

	snap, err := c.client.Snapshot(ctx, symbol)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Crypto snapshot failed, layers will be empty")
		return flows, structure, sentiment
	}

	mapped := fetch.MapSnapshot(snap, now, c.maxAgeDays, c.logger)
	for _, v := range mapped.Flows {
		flows.Add(v)
	}
	for _, v := range mapped.Structure {
		structure.Add(v)
	}
	for _, v := range mapped.Sentiment {
		sentiment.Add(v)
	}

	c.logger.WithFields(map[string]interface{}{
		"flows":     len(flows.Indicators),
		"structure": len(structure.Indicators),
		"sentiment": len(sentiment.Indicators),
	}).Info("Crypto layer collection completed")

	return flows, structure, sentiment
}
