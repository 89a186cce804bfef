package layers

import "github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"

// Comparator is a threshold comparison operator.
type Comparator string

const (
	CmpGT  Comparator = "gt"
	CmpGTE Comparator = "gte"
	CmpLT  Comparator = "lt"
	CmpLTE Comparator = "lte"
)

// Rule is one scoring rule: when the named indicator compares true against
// the threshold, Delta is applied and Label is recorded. Indicators absent
// from the layer skip their rules entirely.
type Rule struct {
	Indicator string
	Cmp       Comparator
	Threshold float64
	Delta     int
	Label     string
}

// DefaultMacroRules returns the global-liquidity scoring table.
// SSOT: macro score thresholds are defined only here.
func DefaultMacroRules() []Rule {
	return []Rule{
		{contracts.IndFedNetLiquidity, CmpGT, 6000, +15, "net_liquidity_rising"},
		{contracts.IndFedNetLiquidity, CmpLTE, 6000, -10, "net_liquidity_falling"},
		{contracts.IndDXY, CmpLT, 103, +10, "dollar_index_falling"},
		{contracts.IndDXY, CmpGTE, 103, -5, "dollar_index_elevated"},
		{contracts.IndUS10Y, CmpLT, 4.0, +10, "us10y_falling"},
		{contracts.IndYieldCurve, CmpGT, -0.1, -20, "yield_curve_uninverting"},
		{contracts.IndCNYLiquidity, CmpGT, 7.2, +5, "cny_liquidity_injection"},
	}
}

// EvaluateRules scores a layer against a rule table. The score starts at a
// neutral 50, each firing rule shifts it, and the result is clamped to
// [0,100]. Fired labels are recorded in table order.
func EvaluateRules(layer contracts.LayerResult, rules []Rule) contracts.MacroScore {
	score := 50
	signals := []string{}

	for _, rule := range rules {
		value, ok := layer.Indicator(rule.Indicator)
		if !ok {
			continue
		}
		if rule.fires(value) {
			score += rule.Delta
			signals = append(signals, rule.Label)
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return contracts.MacroScore{
		Score:   score,
		Level:   classify(score),
		Signals: signals,
	}
}

func (r Rule) fires(value float64) bool {
	switch r.Cmp {
	case CmpGT:
		return value > r.Threshold
	case CmpGTE:
		return value >= r.Threshold
	case CmpLT:
		return value < r.Threshold
	case CmpLTE:
		return value <= r.Threshold
	}
	return false
}

func classify(score int) contracts.ScoreLevel {
	switch {
	case score > 60:
		return contracts.LevelBullish
	case score < 40:
		return contracts.LevelBearish
	default:
		return contracts.LevelNeutral
	}
}
