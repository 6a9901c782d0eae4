package contracts

// SectorSummary is the per-sector average change of validated tickers.
// 유효 종목이 0개인 섹터는 생성되지 않는다 (0으로 채우지 않음).
type SectorSummary struct {
	Name         string  `json:"name"`
	AvgChangePct float64 `json:"change_pct"`
}
