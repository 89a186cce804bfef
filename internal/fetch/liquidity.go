package fetch

import (
	"context"
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// netLiquidityFetcher derives Fed net liquidity from three FRED series:
// total assets minus the Treasury general account minus reverse repo.
// WALCL and WTREGEN report millions, RRPONTSYD billions.
type netLiquidityFetcher struct {
	client     *macro.Client
	logger     *logger.Logger
	now        func() time.Time
	maxAgeDays int
}

func (f *netLiquidityFetcher) Name() string { return contracts.IndFedNetLiquidity }

func (f *netLiquidityFetcher) Fetch(ctx context.Context) contracts.IndicatorValue {
	now := f.now()
	start := now.Add(-balanceSheetWindow).Format(dateLayout)
	end := now.Format(dateLayout)

	series := map[string]float64{}
	oldest := time.Time{}
	for _, id := range []string{"WALCL", "WTREGEN", "RRPONTSYD"} {
		points, err := f.client.FredSeries(ctx, id, start, end)
		if err != nil {
			f.logger.WithError(err).WithField("series_id", id).Warn("net liquidity component fetch failed")
			return contracts.Absent(f.Name(), contracts.SourceFRED)
		}
		value, asOf, ok := lastSeriesValue(points)
		if !ok {
			f.logger.WithField("series_id", id).Warn("net liquidity component has no observations")
			return contracts.Absent(f.Name(), contracts.SourceFRED)
		}
		series[id] = value
		if oldest.IsZero() || asOf.Before(oldest) {
			oldest = asOf
		}
	}

	if stale(oldest, now, f.maxAgeDays) {
		f.logger.WithField("as_of", oldest.Format(dateLayout)).Warn("net liquidity observation too old, demoting to absence")
		return contracts.Absent(f.Name(), contracts.SourceFRED)
	}

	// Normalize RRP to millions before combining, report billions.
	netLiquidityB := (series["WALCL"] - series["WTREGEN"] - series["RRPONTSYD"]*1000) / 1000

	return contracts.Observed(f.Name(), netLiquidityB, "B USD", oldest, contracts.SourceFRED)
}

// quoteCloseFetcher reports the latest daily close of one quoted symbol,
// optionally rescaled.
type quoteCloseFetcher struct {
	client     *macro.Client
	logger     *logger.Logger
	now        func() time.Time
	maxAgeDays int

	name      string
	symbol    string
	unit      string
	transform func(float64) float64
}

func (f *quoteCloseFetcher) Name() string { return f.name }

func (f *quoteCloseFetcher) Fetch(ctx context.Context) contracts.IndicatorValue {
	bars, err := f.client.Quote(ctx, f.symbol, quotePeriod, quoteInterval)
	if err != nil {
		f.logger.WithError(err).WithField("symbol", f.symbol).Warn("quote fetch failed")
		return contracts.Absent(f.name, contracts.SourceYFinance)
	}

	value, asOf, ok := lastClose(bars)
	if !ok {
		f.logger.WithField("symbol", f.symbol).Warn("quote has no usable close")
		return contracts.Absent(f.name, contracts.SourceYFinance)
	}
	if stale(asOf, f.now(), f.maxAgeDays) {
		f.logger.WithFields(map[string]interface{}{
			"symbol": f.symbol,
			"as_of":  asOf.Format(dateLayout),
		}).Warn("quote observation too old, demoting to absence")
		return contracts.Absent(f.name, contracts.SourceYFinance)
	}
	if f.transform != nil {
		value = f.transform(value)
	}

	return contracts.Observed(f.name, value, f.unit, asOf, contracts.SourceYFinance)
}

// fredLatestFetcher reports the latest observation of one FRED series.
type fredLatestFetcher struct {
	client     *macro.Client
	logger     *logger.Logger
	now        func() time.Time
	maxAgeDays int

	name     string
	seriesID string
	unit     string
}

func (f *fredLatestFetcher) Name() string { return f.name }

func (f *fredLatestFetcher) Fetch(ctx context.Context) contracts.IndicatorValue {
	now := f.now()
	start := now.Add(-rateWindow).Format(dateLayout)
	end := now.Format(dateLayout)

	points, err := f.client.FredSeries(ctx, f.seriesID, start, end)
	if err != nil {
		f.logger.WithError(err).WithField("series_id", f.seriesID).Warn("series fetch failed")
		return contracts.Absent(f.name, contracts.SourceFRED)
	}

	value, asOf, ok := lastSeriesValue(points)
	if !ok {
		f.logger.WithField("series_id", f.seriesID).Warn("series has no observations")
		return contracts.Absent(f.name, contracts.SourceFRED)
	}
	if stale(asOf, now, f.maxAgeDays) {
		f.logger.WithFields(map[string]interface{}{
			"series_id": f.seriesID,
			"as_of":     asOf.Format(dateLayout),
		}).Warn("series observation too old, demoting to absence")
		return contracts.Absent(f.name, contracts.SourceFRED)
	}

	return contracts.Observed(f.name, value, f.unit, asOf, contracts.SourceFRED)
}

// rescaleTreasuryYield corrects the ^TNX quirk where 42.5 means 4.25%.
func rescaleTreasuryYield(v float64) float64 {
	if v > 10 {
		return v / 10
	}
	return v
}

// LiquidityFetchers returns the full global-liquidity fetcher set.
// SSOT: the L1 indicator-to-source mapping lives only here.
func LiquidityFetchers(client *macro.Client, log *logger.Logger, now func() time.Time, maxAgeDays int) []Fetcher {
	quote := func(name, symbol, unit string, transform func(float64) float64) Fetcher {
		return &quoteCloseFetcher{
			client: client, logger: log, now: now, maxAgeDays: maxAgeDays,
			name: name, symbol: symbol, unit: unit, transform: transform,
		}
	}
	fred := func(name, seriesID, unit string) Fetcher {
		return &fredLatestFetcher{
			client: client, logger: log, now: now, maxAgeDays: maxAgeDays,
			name: name, seriesID: seriesID, unit: unit,
		}
	}

	return []Fetcher{
		&netLiquidityFetcher{client: client, logger: log, now: now, maxAgeDays: maxAgeDays},
		quote(contracts.IndDXY, "DX-Y.NYB", "index", nil),
		quote(contracts.IndUS10Y, "^TNX", "pct", rescaleTreasuryYield),
		fred(contracts.IndUS02Y, "DGS2", "pct"),
		fred(contracts.IndYieldCurve, "T10Y2Y", "pct"),
		quote(contracts.IndSPX, "^GSPC", "index", nil),
		quote(contracts.IndNDX, "^NDX", "index", nil),
		quote(contracts.IndCNYLiquidity, "CNH=X", "CNY/USD", nil),
	}
}
