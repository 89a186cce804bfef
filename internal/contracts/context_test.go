package contracts

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestIndicatorValuePresence(t *testing.T) {
	asOf := time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)

	observed := Observed(IndDXY, 102.4, "index", asOf, SourceYFinance)
	if !observed.Present() {
		t.Error("Observed() value should be present")
	}
	if *observed.Value != 102.4 {
		t.Errorf("Value = %v, want 102.4", *observed.Value)
	}

	absent := Absent(IndDXY, SourceYFinance)
	if absent.Present() {
		t.Error("Absent() value should not be present")
	}
}

func TestZeroIsNotAbsent(t *testing.T) {
	// Zero and unknown must stay distinguishable
	v := Observed(IndETFNetInflow, 0, "USD", time.Now(), SourceFarside)
	if !v.Present() {
		t.Error("a zero observation must still be present")
	}
}

func TestLayerResultAddDropsAbsent(t *testing.T) {
	layer := NewLayerResult(LayerGlobalLiquidity, time.Now())

	layer.Add(Observed(IndDXY, 101.2, "index", time.Now(), SourceYFinance))
	layer.Add(Absent(IndUS10Y, SourceYFinance))

	if len(layer.Indicators) != 1 {
		t.Fatalf("Indicators has %d entries, want 1", len(layer.Indicators))
	}
	if _, ok := layer.Indicators[IndUS10Y]; ok {
		t.Error("absent indicator must be omitted, not stored as a sentinel")
	}

	value, ok := layer.Indicator(IndDXY)
	if !ok || value != 101.2 {
		t.Errorf("Indicator(dxy) = (%v, %v), want (101.2, true)", value, ok)
	}

	if _, ok := layer.Indicator(IndUS10Y); ok {
		t.Error("Indicator() must report missing names as not present")
	}
}

func TestSentimentContains(t *testing.T) {
	signals := PentoshSignals{
		Sentiment: []SentimentFlag{SentimentOverheated, SentimentExtremeGreed},
	}

	if !signals.SentimentContains(SentimentOverheated) {
		t.Error("expected overheated to be present")
	}
	if signals.SentimentContains(SentimentOversold) {
		t.Error("did not expect oversold")
	}
}

func TestDailyContextFilename(t *testing.T) {
	ctx := &DailyContext{Date: "2024-11-02"}
	if got := ctx.Filename(); got != "Daily_Context_2024-11-02.json" {
		t.Errorf("Filename() = %s", got)
	}
}

func TestDailyContextJSONShape(t *testing.T) {
	now := time.Date(2024, 11, 2, 9, 30, 0, 0, time.UTC)

	layer1 := NewLayerResult(LayerGlobalLiquidity, now)
	layer1.Add(Observed(IndDXY, 102.0, "index", now, SourceYFinance))
	layer1.Score = &MacroScore{Score: 60, Level: LevelNeutral, Signals: []string{"dollar_index_falling"}}

	dc := DailyContext{
		Timestamp: now,
		Date:      "2024-11-02",
		Symbol:    "BTC/USDT",
		Layer1:    layer1,
		Layer2:    NewLayerResult(LayerCryptoFlows, now),
		Layer3:    NewLayerResult(LayerMarketStructure, now),
		Layer4:    NewLayerResult(LayerSentiment, now),
		Signals: PentoshSignals{
			MacroTrend:      LevelNeutral,
			CryptoMomentum:  MomentumNeutral,
			MarketStructure: StructureNeutral,
			Sentiment:       []SentimentFlag{},
			OverallBias:     BiasWait,
			RiskLevel:       RiskMedium,
		},
	}

	data, err := json.Marshal(&dc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(data)

	// The top-level shape is always fully present
	for _, key := range []string{
		`"timestamp"`, `"date"`, `"symbol"`,
		`"layer1_global_liquidity"`, `"layer2_crypto_flows"`,
		`"layer3_market_structure"`, `"layer4_sentiment"`,
		`"pentosh1_signals"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("artifact JSON missing key %s", key)
		}
	}

	// Empty sentiment serializes as a list, not null
	if !strings.Contains(body, `"sentiment":[]`) {
		t.Errorf("empty sentiment should serialize as [], got: %s", body)
	}

	// Only L1 carries a score object
	if strings.Count(body, `"score":{`) != 1 {
		t.Errorf("score object should appear exactly once (L1), got: %s", body)
	}

	var decoded DailyContext
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Layer2.Score != nil {
		t.Error("L2 score should stay nil")
	}
	if v, ok := decoded.Layer1.Indicator(IndDXY); !ok || v != 102.0 {
		t.Errorf("round-trip lost L1 dxy: (%v, %v)", v, ok)
	}
}
