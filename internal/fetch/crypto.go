package fetch

import (
	"time"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/macro"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
)

// SnapshotIndicators is a consolidated crypto snapshot mapped onto layer
// indicator sets. Absent upstream fields simply do not appear.
type SnapshotIndicators struct {
	Flows     []contracts.IndicatorValue
	Structure []contracts.IndicatorValue
	Sentiment []contracts.IndicatorValue
}

// MapSnapshot converts the upstream crypto batch into indicator values.
// ETF flow fields arrive in millions of USD and are normalized to raw USD
// here, so downstream thresholds compare in one unit.
// SSOT: snapshot field-to-indicator mapping lives only here.
func MapSnapshot(snap *macro.CryptoSnapshot, now time.Time, maxAgeDays int, log *logger.Logger) SnapshotIndicators {
	asOf := now
	if t, err := time.Parse(time.RFC3339, snap.Timestamp); err == nil {
		asOf = t
	}

	etfAsOf := asOf
	if snap.Flows.ETFDate != "" {
		if t, err := time.Parse(dateLayout, snap.Flows.ETFDate); err == nil {
			etfAsOf = t
		}
	}
	etfStale := stale(etfAsOf, now, maxAgeDays)
	if etfStale {
		log.WithField("etf_date", snap.Flows.ETFDate).Warn("ETF flow observation too old, demoting to absence")
	}

	var out SnapshotIndicators

	addIf := func(dst *[]contracts.IndicatorValue, ptr *float64, name, unit string, asOf time.Time, source contracts.Source) {
		if ptr == nil {
			return
		}
		*dst = append(*dst, contracts.Observed(name, *ptr, unit, asOf, source))
	}

	// L2 institutional flows
	addIf(&out.Flows, snap.Flows.StablecoinMcapB, contracts.IndStablecoinMcapB, "B USD", asOf, contracts.SourceDeFiLlama)
	if !etfStale {
		if snap.Flows.ETFNetInflowM != nil {
			out.Flows = append(out.Flows, contracts.Observed(
				contracts.IndETFNetInflow, *snap.Flows.ETFNetInflowM*1e6, "USD", etfAsOf, contracts.SourceFarside))
		}
		if snap.Flows.ETFIBITFlowM != nil {
			out.Flows = append(out.Flows, contracts.Observed(
				contracts.IndETFIBITFlow, *snap.Flows.ETFIBITFlowM*1e6, "USD", etfAsOf, contracts.SourceFarside))
		}
	}

	// L3 market structure
	addIf(&out.Structure, snap.Structure.BTCDominance, contracts.IndBTCDominance, "pct", asOf, contracts.SourceCoinGecko)
	addIf(&out.Structure, snap.Structure.ETHDominance, contracts.IndETHDominance, "pct", asOf, contracts.SourceCoinGecko)
	addIf(&out.Structure, snap.Structure.ETHBTCRatio, contracts.IndETHBTCRatio, "ratio", asOf, contracts.SourceCoinGecko)
	addIf(&out.Structure, snap.Structure.Total3CapB, contracts.IndTotal3CapB, "B USD", asOf, contracts.SourceCoinGecko)
	addIf(&out.Structure, snap.Structure.TotalMarketCapB, contracts.IndTotalMarketCapB, "B USD", asOf, contracts.SourceCoinGecko)

	// L4 sentiment and positioning
	addIf(&out.Sentiment, snap.Sentiment.PriceBTC, contracts.IndPriceBTC, "USD", asOf, contracts.SourceBinance)
	addIf(&out.Sentiment, snap.Sentiment.PriceChange24hPct, contracts.IndPriceChange24h, "pct", asOf, contracts.SourceBinance)
	addIf(&out.Sentiment, snap.Sentiment.FundingRateAnnualPct, contracts.IndFundingRateAnnual, "pct", asOf, contracts.SourceBinance)
	addIf(&out.Sentiment, snap.Sentiment.OpenInterestUSDB, contracts.IndOpenInterestUSDB, "B USD", asOf, contracts.SourceBinance)
	addIf(&out.Sentiment, snap.Sentiment.LongShortRatio, contracts.IndLongShortRatio, "ratio", asOf, contracts.SourceBinance)
	addIf(&out.Sentiment, snap.Sentiment.FearGreedIndex, contracts.IndFearGreedIndex, "index", asOf, contracts.SourceAlternative)

	return out
}
