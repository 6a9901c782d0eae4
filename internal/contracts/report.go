package contracts

// MarketReport is one market's aggregation output for a fetch cycle
type MarketReport struct {
	Sectors   []SectorSummary `json:"sectors"`
	TopStocks []ScoredStock   `json:"top_stocks"`
}

// IndexQuote is a major index level with its daily change.
// 값을 못 구한 지수는 null로 내려간다 (항목 자체는 유지).
type IndexQuote struct {
	Value     *float64 `json:"value"`
	ChangePct *float64 `json:"change_pct"`
}

// Indices holds the fixed set of tracked index quotes
type Indices struct {
	Kospi  IndexQuote `json:"kospi"`
	Kosdaq IndexQuote `json:"kosdaq"`
	SP500  IndexQuote `json:"sp500"`
	Nasdaq IndexQuote `json:"nasdaq"`
	Dow    IndexQuote `json:"dow"`
	USDKRW IndexQuote `json:"usdkrw"`
}

// Strategy is the generated trading strategy narrative
type Strategy struct {
	Overview  string `json:"overview"`
	Action    string `json:"action"`
	Risk      string `json:"risk"`
	Watchlist string `json:"watchlist"`
	Date      string `json:"date"`
}

// Dashboard is the cycle's full output, serialized to market_data.json
// ⭐ JSON 키는 외부 소비자 계약: 변경 금지
type Dashboard struct {
	UpdatedAt string       `json:"updated_at"`
	Indices   Indices      `json:"indices"`
	KR        MarketReport `json:"kr"`
	US        MarketReport `json:"us"`
	Strategy  Strategy     `json:"strategy"`
}
