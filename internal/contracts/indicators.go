package contracts

// Canonical indicator names per layer. Lookups across packages are by
// name, so the strings are defined once here.
const (
	// L1: global liquidity
	IndFedNetLiquidity = "fed_net_liquidity"
	IndDXY             = "dxy"
	IndUS10Y           = "us10y"
	IndUS02Y           = "us02y"
	IndYieldCurve      = "yield_curve"
	IndSPX             = "spx"
	IndNDX             = "ndx"
	IndCNYLiquidity    = "cny_liquidity"

	// L2: crypto flows
	IndStablecoinMcapB = "stablecoin_mcap_b"
	IndETFNetInflow    = "etf_net_inflow"
	IndETFIBITFlow     = "etf_ibit_flow"

	// L3: market structure
	IndBTCDominance    = "btc_dominance"
	IndETHDominance    = "eth_dominance"
	IndETHBTCRatio     = "eth_btc_ratio"
	IndTotal3CapB      = "total3_cap_b"
	IndTotalMarketCapB = "total_market_cap_b"

	// L4: sentiment and positioning
	IndPriceBTC          = "price_btc"
	IndPriceChange24h    = "price_change_24h_pct"
	IndFundingRateAnnual = "funding_rate_annualized_pct"
	IndOpenInterestUSDB  = "open_interest_usd_b"
	IndLongShortRatio    = "long_short_ratio"
	IndFearGreedIndex    = "fear_greed_index"
)
