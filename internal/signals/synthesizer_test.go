package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
)

func emptyLayer(id contracts.LayerID) contracts.LayerResult {
	return contracts.NewLayerResult(id, time.Date(2024, 11, 2, 9, 0, 0, 0, time.UTC))
}

func layerWith(id contracts.LayerID, values map[string]float64) contracts.LayerResult {
	layer := emptyLayer(id)
	for name, v := range values {
		layer.Add(contracts.Observed(name, v, "", layer.CollectedAt, contracts.SourceBinance))
	}
	return layer
}

func scoredLayer(level contracts.ScoreLevel) contracts.LayerResult {
	layer := emptyLayer(contracts.LayerGlobalLiquidity)
	layer.Score = &contracts.MacroScore{Score: 50, Level: level, Signals: []string{}}
	return layer
}

func TestAbsenceSafety(t *testing.T) {
	got := Synthesize(
		emptyLayer(contracts.LayerGlobalLiquidity),
		emptyLayer(contracts.LayerCryptoFlows),
		emptyLayer(contracts.LayerMarketStructure),
		emptyLayer(contracts.LayerSentiment),
	)

	assert.Equal(t, contracts.LevelNeutral, got.MacroTrend)
	assert.Equal(t, contracts.MomentumNeutral, got.CryptoMomentum)
	assert.Equal(t, contracts.StructureNeutral, got.MarketStructure)
	assert.Empty(t, got.Sentiment)
	assert.NotNil(t, got.Sentiment, "empty sentiment must be a set, not nil")
	assert.Equal(t, contracts.BiasWait, got.OverallBias)
	assert.Equal(t, contracts.RiskMedium, got.RiskLevel)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	l1 := scoredLayer(contracts.LevelBullish)
	l2 := layerWith(contracts.LayerCryptoFlows, map[string]float64{contracts.IndETFNetInflow: 250e6})
	l3 := layerWith(contracts.LayerMarketStructure, map[string]float64{contracts.IndBTCDominance: 48})
	l4 := layerWith(contracts.LayerSentiment, map[string]float64{contracts.IndFundingRateAnnual: 12.5})

	first := Synthesize(l1, l2, l3, l4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Synthesize(l1, l2, l3, l4))
	}
}

func TestCryptoMomentumLadder(t *testing.T) {
	tests := []struct {
		name   string
		inflow *float64
		want   contracts.Momentum
	}{
		{"strong inflow", ptr(250e6), contracts.MomentumStrongBullish},
		{"threshold itself is not strong", ptr(200e6), contracts.MomentumBullish},
		{"any positive inflow", ptr(5e6), contracts.MomentumBullish},
		{"zero", ptr(0), contracts.MomentumNeutral},
		{"mild outflow", ptr(-50e6), contracts.MomentumNeutral},
		{"heavy outflow", ptr(-150e6), contracts.MomentumBearish},
		{"absent", nil, contracts.MomentumNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l2 := emptyLayer(contracts.LayerCryptoFlows)
			if tt.inflow != nil {
				l2 = layerWith(contracts.LayerCryptoFlows, map[string]float64{contracts.IndETFNetInflow: *tt.inflow})
			}
			got := Synthesize(emptyLayer(contracts.LayerGlobalLiquidity), l2,
				emptyLayer(contracts.LayerMarketStructure), emptyLayer(contracts.LayerSentiment))
			assert.Equal(t, tt.want, got.CryptoMomentum)
		})
	}
}

func TestMarketStructureLadder(t *testing.T) {
	tests := []struct {
		name      string
		dominance float64
		want      contracts.Structure
	}{
		{"dominant", 56.0, contracts.StructureBTCDominant},
		{"alt season", 48.0, contracts.StructureAltSeason},
		{"middle band", 52.0, contracts.StructureNeutral},
		{"upper boundary", 55.0, contracts.StructureNeutral},
		{"lower boundary", 50.0, contracts.StructureNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l3 := layerWith(contracts.LayerMarketStructure, map[string]float64{contracts.IndBTCDominance: tt.dominance})
			got := Synthesize(emptyLayer(contracts.LayerGlobalLiquidity), emptyLayer(contracts.LayerCryptoFlows),
				l3, emptyLayer(contracts.LayerSentiment))
			assert.Equal(t, tt.want, got.MarketStructure)
		})
	}
}

func TestSentimentConditionsCoTrigger(t *testing.T) {
	l4 := layerWith(contracts.LayerSentiment, map[string]float64{
		contracts.IndFundingRateAnnual: 12.5,
		contracts.IndFearGreedIndex:    90,
	})

	got := Synthesize(emptyLayer(contracts.LayerGlobalLiquidity), emptyLayer(contracts.LayerCryptoFlows),
		emptyLayer(contracts.LayerMarketStructure), l4)

	assert.True(t, got.SentimentContains(contracts.SentimentOverheated))
	assert.True(t, got.SentimentContains(contracts.SentimentExtremeGreed))
	assert.Equal(t, contracts.RiskHigh, got.RiskLevel)
}

func TestOverallBias(t *testing.T) {
	tests := []struct {
		name string
		l1   contracts.LayerResult
		l2   map[string]float64
		l3   map[string]float64
		l4   map[string]float64
		want contracts.Bias
	}{
		{
			name: "two bullish readings go long",
			l1:   scoredLayer(contracts.LevelBullish),
			l2:   map[string]float64{contracts.IndETFNetInflow: 50e6},
			want: contracts.BiasLong,
		},
		{
			name: "two bearish readings go short",
			l1:   scoredLayer(contracts.LevelBearish),
			l3:   map[string]float64{contracts.IndBTCDominance: 57},
			want: contracts.BiasShort,
		},
		{
			name: "one reading each side waits",
			l1:   scoredLayer(contracts.LevelBullish),
			l3:   map[string]float64{contracts.IndBTCDominance: 57},
			want: contracts.BiasWait,
		},
		{
			name: "two against two resolves to wait",
			l1:   scoredLayer(contracts.LevelBullish),
			l2:   map[string]float64{contracts.IndETFNetInflow: 300e6},
			l3:   map[string]float64{contracts.IndBTCDominance: 57},
			l4:   map[string]float64{contracts.IndFundingRateAnnual: 15},
			want: contracts.BiasWait,
		},
		{
			name: "oversold counts toward long",
			l2:   map[string]float64{contracts.IndETFNetInflow: 10e6},
			l4:   map[string]float64{contracts.IndFundingRateAnnual: -8},
			l1:   scoredLayer(contracts.LevelNeutral),
			want: contracts.BiasLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(tt.l1,
				layerWith(contracts.LayerCryptoFlows, tt.l2),
				layerWith(contracts.LayerMarketStructure, tt.l3),
				layerWith(contracts.LayerSentiment, tt.l4))
			assert.Equal(t, tt.want, got.OverallBias)
		})
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name string
		l4   map[string]float64
		want contracts.RiskLevel
	}{
		{"extreme fear is high", map[string]float64{contracts.IndFearGreedIndex: 10}, contracts.RiskHigh},
		{"overheated is high", map[string]float64{contracts.IndFundingRateAnnual: 11}, contracts.RiskHigh},
		{"calm funding is low", map[string]float64{contracts.IndFundingRateAnnual: 1.5}, contracts.RiskLow},
		{"negative calm funding is low", map[string]float64{contracts.IndFundingRateAnnual: -1.5}, contracts.RiskLow},
		{"funding outside calm band", map[string]float64{contracts.IndFundingRateAnnual: 4}, contracts.RiskMedium},
		{"no funding observation cannot be low", map[string]float64{}, contracts.RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Synthesize(emptyLayer(contracts.LayerGlobalLiquidity), emptyLayer(contracts.LayerCryptoFlows),
				emptyLayer(contracts.LayerMarketStructure), layerWith(contracts.LayerSentiment, tt.l4))
			assert.Equal(t, tt.want, got.RiskLevel)
		})
	}
}

func ptr(v float64) *float64 { return &v }
