package contracts

import "time"

// Source identifies the upstream data provider behind an indicator.
type Source string

const (
	SourceFRED        Source = "fred"
	SourceYFinance    Source = "yfinance"
	SourceBinance     Source = "binance"
	SourceDeFiLlama   Source = "defillama"
	SourceCoinGecko   Source = "coingecko"
	SourceAlternative Source = "alternative.me"
	SourceFarside     Source = "farside"
)

// IndicatorValue is a single named, sourced, point-in-time observation.
// A nil Value is a first-class state meaning "unavailable this run" and is
// never coerced to zero: zero and unknown must stay distinguishable for
// threshold comparisons downstream.
type IndicatorValue struct {
	Name   string    `json:"name"`
	Value  *float64  `json:"value"`
	Unit   string    `json:"unit"`
	AsOf   time.Time `json:"as_of"`
	Source Source    `json:"source"`
}

// Observed builds a present indicator value.
func Observed(name string, value float64, unit string, asOf time.Time, source Source) IndicatorValue {
	return IndicatorValue{
		Name:   name,
		Value:  &value,
		Unit:   unit,
		AsOf:   asOf,
		Source: source,
	}
}

// Absent builds an indicator value carrying no observation.
func Absent(name string, source Source) IndicatorValue {
	return IndicatorValue{Name: name, Source: source}
}

// Present reports whether the indicator carries a usable value.
func (v IndicatorValue) Present() bool {
	return v.Value != nil
}

// LayerID identifies one of the four thematic indicator groups.
type LayerID string

const (
	LayerGlobalLiquidity LayerID = "L1"
	LayerCryptoFlows     LayerID = "L2"
	LayerMarketStructure LayerID = "L3"
	LayerSentiment       LayerID = "L4"
)

// LayerResult holds the collected indicators of one layer. Indicators that
// came back absent are omitted from the map entirely; an empty map is a
// valid result. The layer itself never fails, only its contents thin out.
// Only L1 carries a Score.
type LayerResult struct {
	LayerID     LayerID                   `json:"layer_id"`
	Indicators  map[string]IndicatorValue `json:"indicators"`
	Score       *MacroScore               `json:"score,omitempty"`
	CollectedAt time.Time                 `json:"collected_at"`
}

// NewLayerResult creates an empty LayerResult for the given layer.
func NewLayerResult(id LayerID, collectedAt time.Time) LayerResult {
	return LayerResult{
		LayerID:     id,
		Indicators:  make(map[string]IndicatorValue),
		CollectedAt: collectedAt,
	}
}

// Add inserts the indicator into the layer mapping. Absent values are
// dropped, never stored as sentinels.
func (r *LayerResult) Add(v IndicatorValue) {
	if !v.Present() {
		return
	}
	r.Indicators[v.Name] = v
}

// Indicator returns the value of a named indicator and whether it is
// present in this layer.
func (r LayerResult) Indicator(name string) (float64, bool) {
	v, ok := r.Indicators[name]
	if !ok || !v.Present() {
		return 0, false
	}
	return *v.Value, true
}

// ScoreLevel classifies a macro score.
type ScoreLevel string

const (
	LevelBullish ScoreLevel = "bullish"
	LevelNeutral ScoreLevel = "neutral"
	LevelBearish ScoreLevel = "bearish"
)

// MacroScore is the bounded [0,100] composite derived from L1 indicators.
// Signals lists the threshold rules that fired, in rule-evaluation order;
// it exists for explainability, not control flow. Callers must treat the
// score as directional, not calibrated, when Signals is short.
type MacroScore struct {
	Score   int        `json:"score"`
	Level   ScoreLevel `json:"level"`
	Signals []string   `json:"signals"`
}

// Momentum classifies crypto flow momentum (L2).
type Momentum string

const (
	MomentumStrongBullish Momentum = "strong_bullish"
	MomentumBullish       Momentum = "bullish"
	MomentumNeutral       Momentum = "neutral"
	MomentumBearish       Momentum = "bearish"
)

// Structure classifies market rotation (L3).
type Structure string

const (
	StructureBTCDominant Structure = "btc_dominant"
	StructureNeutral     Structure = "neutral"
	StructureAltSeason   Structure = "alt_season"
)

// SentimentFlag is one independently-triggerable sentiment condition (L4).
// Several may fire in the same run.
type SentimentFlag string

const (
	SentimentOverheated   SentimentFlag = "overheated"
	SentimentExtremeGreed SentimentFlag = "extreme_greed"
	SentimentExtremeFear  SentimentFlag = "extreme_fear"
	SentimentOversold     SentimentFlag = "oversold"
)

// Bias is the overall directional recommendation.
type Bias string

const (
	BiasLong  Bias = "long"
	BiasShort Bias = "short"
	BiasWait  Bias = "wait"
)

// RiskLevel grades positioning risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PentoshSignals is the discrete signal vector derived from all four
// layers.
type PentoshSignals struct {
	MacroTrend      ScoreLevel      `json:"macro_trend"`
	CryptoMomentum  Momentum        `json:"crypto_momentum"`
	MarketStructure Structure       `json:"market_structure"`
	Sentiment       []SentimentFlag `json:"sentiment"`
	OverallBias     Bias            `json:"overall_bias"`
	RiskLevel       RiskLevel       `json:"risk_level"`
}

// SentimentContains reports whether the given condition fired.
func (s PentoshSignals) SentimentContains(flag SentimentFlag) bool {
	for _, f := range s.Sentiment {
		if f == flag {
			return true
		}
	}
	return false
}

// DailyContext is one complete, immutable snapshot produced per run.
// Lifecycle is build once, serialize, discard. It is never mutated or
// cached after construction.
type DailyContext struct {
	Timestamp time.Time      `json:"timestamp"`
	Date      string         `json:"date"`
	Symbol    string         `json:"symbol"`
	Layer1    LayerResult    `json:"layer1_global_liquidity"`
	Layer2    LayerResult    `json:"layer2_crypto_flows"`
	Layer3    LayerResult    `json:"layer3_market_structure"`
	Layer4    LayerResult    `json:"layer4_sentiment"`
	Signals   PentoshSignals `json:"pentosh1_signals"`
}

// Filename returns the canonical artifact name for this context.
func (c *DailyContext) Filename() string {
	return "Daily_Context_" + c.Date + ".json"
}
