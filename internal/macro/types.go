package macro

// HealthStatus is the upstream /health response.
type HealthStatus struct {
	Status                 string `json:"status"`
	Service                string `json:"service"`
	FredAvailable          bool   `json:"fred_available"`
	YFinanceAvailable      bool   `json:"yfinance_available"`
	DefillamaAvailable     bool   `json:"defillama_available"`
	CryptoFetcherAvailable bool   `json:"crypto_fetcher_available"`
}

// seriesRequest is the /api/fred/series request body.
type seriesRequest struct {
	SeriesID  string `json:"series_id"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// SeriesPoint is one observation of a FRED-style series. Value stays a
// pointer: upstream emits explicit nulls for unreported dates.
type SeriesPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// seriesResponse is the /api/fred/series response body.
type seriesResponse struct {
	SeriesID string        `json:"series_id"`
	Data     []SeriesPoint `json:"data"`
	Count    int           `json:"count"`
}

// quoteRequest is the /api/yfinance/quote request body.
type quoteRequest struct {
	Symbol   string `json:"symbol"`
	Period   string `json:"period,omitempty"`
	Interval string `json:"interval,omitempty"`
}

// Bar is one daily bar of a quoted symbol.
type Bar struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *int64   `json:"volume"`
}

// quoteResponse is the /api/yfinance/quote response body.
type quoteResponse struct {
	Symbol string `json:"symbol"`
	Data   []Bar  `json:"data"`
	Count  int    `json:"count"`
}

// snapshotRequest is the /api/crypto/all request body.
type snapshotRequest struct {
	Symbol string `json:"symbol"`
}

// CryptoSnapshot is the consolidated crypto batch response covering
// layers L2–L4. Any subset of fields may be null.
type CryptoSnapshot struct {
	Timestamp string         `json:"timestamp"`
	Symbol    string         `json:"symbol"`
	Flows     FlowsBlock     `json:"layer2_flows"`
	Structure StructureBlock `json:"layer3_structure"`
	Sentiment SentimentBlock `json:"layer4_sentiment"`
}

// FlowsBlock carries institutional flow fields (L2).
type FlowsBlock struct {
	StablecoinMcapB *float64 `json:"stablecoin_mcap_b"`
	ETFNetInflowM   *float64 `json:"etf_net_inflow_m"`
	ETFIBITFlowM    *float64 `json:"etf_ibit_flow_m"`
	ETFDate         string   `json:"etf_date"`
}

// StructureBlock carries market structure fields (L3).
type StructureBlock struct {
	BTCDominance    *float64 `json:"btc_dominance"`
	ETHDominance    *float64 `json:"eth_dominance"`
	ETHBTCRatio     *float64 `json:"eth_btc_ratio"`
	Total3CapB      *float64 `json:"total3_cap_b"`
	TotalMarketCapB *float64 `json:"total_market_cap_b"`
}

// SentimentBlock carries positioning and sentiment fields (L4).
type SentimentBlock struct {
	PriceBTC             *float64 `json:"price_btc"`
	PriceChange24hPct    *float64 `json:"price_change_24h_pct"`
	FundingRateAnnualPct *float64 `json:"funding_rate_annualized_pct"`
	OpenInterestUSDB     *float64 `json:"open_interest_usd_b"`
	LongShortRatio       *float64 `json:"long_short_ratio"`
	FearGreedIndex       *float64 `json:"fear_greed_index"`
}
