package signals

import "github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"

// Flow and structure thresholds. ETF flow compares in raw USD.
const (
	etfStrongInflowUSD = 200e6
	etfOutflowUSD      = -100e6

	btcDominantPct = 55
	altSeasonPct   = 50

	fundingOverheatedPct = 10
	fundingOversoldPct   = -5
	fundingCalmBandPct   = 2

	extremeGreedIndex = 85
	extremeFearIndex  = 20
)

// Synthesize derives the discrete signal vector from the four collected
// layers. It is pure: same layers in, same signals out, no I/O and no
// clock. Every ladder degrades to its neutral rung when the indicator it
// reads is absent.
func Synthesize(l1, l2, l3, l4 contracts.LayerResult) contracts.PentoshSignals {
	signals := contracts.PentoshSignals{
		MacroTrend:      macroTrend(l1),
		CryptoMomentum:  cryptoMomentum(l2),
		MarketStructure: marketStructure(l3),
		Sentiment:       sentimentFlags(l4),
	}
	signals.OverallBias = overallBias(signals)
	signals.RiskLevel = riskLevel(signals, l4)
	return signals
}

func macroTrend(l1 contracts.LayerResult) contracts.ScoreLevel {
	if l1.Score == nil {
		return contracts.LevelNeutral
	}
	return l1.Score.Level
}

func cryptoMomentum(l2 contracts.LayerResult) contracts.Momentum {
	inflow, ok := l2.Indicator(contracts.IndETFNetInflow)
	if !ok {
		return contracts.MomentumNeutral
	}
	switch {
	case inflow > etfStrongInflowUSD:
		return contracts.MomentumStrongBullish
	case inflow > 0:
		return contracts.MomentumBullish
	case inflow < etfOutflowUSD:
		return contracts.MomentumBearish
	default:
		return contracts.MomentumNeutral
	}
}

func marketStructure(l3 contracts.LayerResult) contracts.Structure {
	dominance, ok := l3.Indicator(contracts.IndBTCDominance)
	if !ok {
		return contracts.StructureNeutral
	}
	switch {
	case dominance > btcDominantPct:
		return contracts.StructureBTCDominant
	case dominance < altSeasonPct:
		return contracts.StructureAltSeason
	default:
		return contracts.StructureNeutral
	}
}

// sentimentFlags collects every fired condition. The result is a set with
// a fixed emission order; an empty set is a meaningful "calm" reading and
// serializes as [] rather than null.
func sentimentFlags(l4 contracts.LayerResult) []contracts.SentimentFlag {
	flags := []contracts.SentimentFlag{}

	funding, hasFunding := l4.Indicator(contracts.IndFundingRateAnnual)
	fearGreed, hasFearGreed := l4.Indicator(contracts.IndFearGreedIndex)

	if hasFunding && funding > fundingOverheatedPct {
		flags = append(flags, contracts.SentimentOverheated)
	}
	if hasFearGreed && fearGreed > extremeGreedIndex {
		flags = append(flags, contracts.SentimentExtremeGreed)
	}
	if hasFearGreed && fearGreed < extremeFearIndex {
		flags = append(flags, contracts.SentimentExtremeFear)
	}
	if hasFunding && funding < fundingOversoldPct {
		flags = append(flags, contracts.SentimentOversold)
	}

	return flags
}

// overallBias counts supportive against hostile readings. Two or more on
// one side with a strict majority sets the bias; anything else is wait.
func overallBias(s contracts.PentoshSignals) contracts.Bias {
	bull := 0
	bear := 0

	if s.MacroTrend == contracts.LevelBullish {
		bull++
	}
	if s.MacroTrend == contracts.LevelBearish {
		bear++
	}

	if s.CryptoMomentum == contracts.MomentumBullish || s.CryptoMomentum == contracts.MomentumStrongBullish {
		bull++
	}
	if s.CryptoMomentum == contracts.MomentumBearish {
		bear++
	}

	if s.MarketStructure == contracts.StructureAltSeason {
		bull++
	}
	if s.MarketStructure == contracts.StructureBTCDominant {
		bear++
	}

	if s.SentimentContains(contracts.SentimentOversold) {
		bull++
	}
	if s.SentimentContains(contracts.SentimentOverheated) {
		bear++
	}

	switch {
	case bull >= 2 && bull > bear:
		return contracts.BiasLong
	case bear >= 2 && bear > bull:
		return contracts.BiasShort
	default:
		return contracts.BiasWait
	}
}

// riskLevel grades positioning risk. Extreme sentiment in either direction
// is high risk. Low risk needs a clean flag set plus a funding reading
// inside the calm band; without a funding observation the grade cannot
// drop below medium.
func riskLevel(s contracts.PentoshSignals, l4 contracts.LayerResult) contracts.RiskLevel {
	if s.SentimentContains(contracts.SentimentOverheated) ||
		s.SentimentContains(contracts.SentimentExtremeGreed) ||
		s.SentimentContains(contracts.SentimentExtremeFear) {
		return contracts.RiskHigh
	}

	funding, hasFunding := l4.Indicator(contracts.IndFundingRateAnnual)
	if len(s.Sentiment) == 0 && hasFunding && funding < fundingCalmBandPct && funding > -fundingCalmBandPct {
		return contracts.RiskLow
	}

	return contracts.RiskMedium
}
