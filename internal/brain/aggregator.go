package brain

import (
	"context"
	"fmt"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/layers"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/signals"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// Aggregator runs one full context build: health gate, layer collection in
// fixed order, signal synthesis, stamping.
// SSOT: DailyContext construction happens only here.
type Aggregator struct {
	client    *macro.Client
	liquidity *layers.LiquidityCollector
	crypto    *layers.CryptoCollector
	logger    *logger.Logger
	now       func() time.Time
}

// NewAggregator creates an Aggregator. The clock is injected so runs can be
// stamped deterministically under test.
func NewAggregator(
	client *macro.Client,
	liquidity *layers.LiquidityCollector,
	crypto *layers.CryptoCollector,
	log *logger.Logger,
	now func() time.Time,
) *Aggregator {
	return &Aggregator{
		client:    client,
		liquidity: liquidity,
		crypto:    crypto,
		logger:    log.WithField("module", "aggregator"),
		now:       now,
	}
}

// BuildContext produces one immutable DailyContext. The upstream health
// probe is the only fatal data-path condition: past it, missing indicators
// thin the layers out but never fail the run. The symbol labels the run and
// is otherwise opaque.
func (a *Aggregator) BuildContext(ctx context.Context, symbol string) (*contracts.DailyContext, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol must not be empty")
	}

	health, err := a.client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("upstream health check: %w", err)
	}
	a.logger.WithFields(map[string]interface{}{
		"status": health.Status,
		"symbol": symbol,
	}).Info("Upstream healthy, starting context build")

	layer1 := a.liquidity.Collect(ctx)
	layer2, layer3, layer4 := a.crypto.Collect(ctx, symbol)

	now := a.now()
	dc := &contracts.DailyContext{
		Timestamp: now,
		Date:      now.Format("2006-01-02"),
		Symbol:    symbol,
		Layer1:    layer1,
		Layer2:    layer2,
		Layer3:    layer3,
		Layer4:    layer4,
		Signals:   signals.Synthesize(layer1, layer2, layer3, layer4),
	}

	a.logger.WithFields(map[string]interface{}{
		"date":        dc.Date,
		"macro_score": layer1.Score.Score,
		"bias":        dc.Signals.OverallBias,
		"risk":        dc.Signals.RiskLevel,
	}).Info("Context build completed")

	return dc, nil
}
