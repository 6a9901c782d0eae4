package contracts

import "math"

// RawSnapshot is one ticker's price/volume state at fetch time.
// Immutable: 수집 사이클마다 새로 만들고 스코어링 후 버린다.
type RawSnapshot struct {
	Ticker        string  // exchange-qualified (005930.KS, NVDA)
	Name          string  // display name
	Sector        string  // grouping label
	Market        Market  // KR or US
	LastPrice     float64
	PreviousClose float64
	DayVolume     int64   // 당일 거래량
	AvgVolume     float64 // 3개월 평균 거래량 (0 = 기준 없음, 서프라이즈 1.0 가정)
}

// ChangePct computes the day-over-day change in percent, rounded to 2
// decimals. Returns false when no previous close is available; the
// snapshot cannot produce a change and must be dropped.
func (s RawSnapshot) ChangePct() (float64, bool) {
	if s.PreviousClose == 0 || s.LastPrice == 0 {
		return 0, false
	}
	chg := (s.LastPrice - s.PreviousClose) / s.PreviousClose * 100
	return math.Round(chg*100) / 100, true
}
