package scoring

import (
	"math"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// 시장별 등락률 유효 범위
// KR: KOSPI·KOSDAQ 법정 가격제한폭 ±30%
//     → 초과 시 권리락·액면분할·피드 오류 가능성 → 무효화
// US: 대형주 기준 일일 ±50% 초과는 데이터 오류로 간주
var changeLimits = map[contracts.Market]float64{
	contracts.MarketKR: 30.0,
	contracts.MarketUS: 50.0,
}

const defaultChangeLimit = 30.0

// Validator rejects day-over-day changes outside the market's
// plausibility band. Rejection is a filtering decision, not a fault.
// ⭐ SSOT: 등락률 이상치 판정은 여기서만
type Validator struct {
	logger *logger.Logger
}

// NewValidator creates a new outlier validator
func NewValidator(log *logger.Logger) *Validator {
	return &Validator{logger: log}
}

// Limit returns the plausibility limit for a market
func Limit(market contracts.Market) float64 {
	if limit, ok := changeLimits[market]; ok {
		return limit
	}
	return defaultChangeLimit
}

// Validate checks a change percentage against the market limit.
// Returns (changePct, true) when accepted, (0, false) when rejected.
// 경계값은 허용: abs(chg) > limit 일 때만 거부.
func (v *Validator) Validate(changePct float64, market contracts.Market, ticker string) (float64, bool) {
	limit := Limit(market)
	if math.Abs(changePct) > limit {
		v.logger.WithFields(map[string]interface{}{
			"ticker":     ticker,
			"market":     market.String(),
			"change_pct": changePct,
			"limit":      limit,
		}).Warn("등락률 이상치 감지: 해당 데이터 무효화")
		return 0, false
	}
	return changePct, true
}
