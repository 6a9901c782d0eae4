package contracts

// Market identifies one of the two modeled equity markets
type Market string

const (
	MarketKR Market = "KR" // KOSPI·KOSDAQ
	MarketUS Market = "US" // NYSE·NASDAQ (대형주 기준)
)

// String returns the market tag
func (m Market) String() string {
	return string(m)
}
