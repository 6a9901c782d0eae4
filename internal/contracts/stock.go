package contracts

// ScoredStock is a validated, scored snapshot, the unit of the leading
// stock ranking. Never mutated after creation.
// ⭐ JSON 키는 대시보드 프론트엔드 계약: 변경 금지
type ScoredStock struct {
	Ticker       string  `json:"ticker"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	Price        float64 `json:"price"`
	ChangePct    float64 `json:"change_pct"`
	Volume       int64   `json:"volume"`
	TradingValue int64   `json:"trading_value"` // price × volume (원 or $)
	VolSurge     float64 `json:"vol_surge"`     // 표시용 비율 (클램프 없음)
	Score        float64 `json:"score"`         // composite rank key
}
