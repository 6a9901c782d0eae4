package scoring

import "math"

// OutcomeKind tags the three scoring branches
type OutcomeKind int

const (
	// OutcomeDecliner: change_pct <= 0, key는 등락률 그대로 (하락폭 순 정렬)
	OutcomeDecliner OutcomeKind = iota
	// OutcomeNoActivity: 상승했지만 거래대금 < 1인 유령 데이터, key 0.0 고정
	OutcomeNoActivity
	// OutcomeScored: 실거래 상승 종목, key는 복합 스코어
	OutcomeScored
)

// Outcome is the scorer's tagged result. The ordering invariant
// (decliners < no-activity < scored positives) holds by construction of
// Key(): decliner keys are <= 0, no-activity keys are exactly 0, scored
// keys are > 0.
type Outcome struct {
	Kind OutcomeKind
	key  float64
}

// Key collapses the outcome to the single sortable rank key
func (o Outcome) Key() float64 {
	return o.key
}

// 거래량 서프라이즈 클램프 범위: 일회성 수급 폭주/평균 붕괴가
// 곱셈 항을 지배하지 못하게 한다
const (
	surgeFloor = 0.1
	surgeCeil  = 10.0
)

// Score computes the composite leading-stock score:
//
//	등락률 × log10(거래대금) × 거래량서프라이즈
//
// ① 등락률: 방향성 및 강도 (음수 종목 자동 하위)
// ② log10(거래대금): 시장 참여 규모 (거래대금 = 가격 × 당일거래량)
// ③ 거래량서프라이즈: 당일거래량 / 평균거래량, [0.1, 10.0] 클램프
//
// 곱셈 결합이라 한 요인만 약해도 점수가 눌린다. 방향성만으로는
// 상위 랭크 불가.
func Score(changePct, price float64, dayVolume int64, avgVolume float64) Outcome {
	if changePct <= 0 {
		return Outcome{Kind: OutcomeDecliner, key: changePct}
	}

	tradingValue := price * float64(dayVolume)
	if tradingValue < 1 {
		// 거래가 없으면 0점: 하락 종목보다는 위, 실거래 상승 종목보다는
		// 아래, TOP 10 경합에서 자동 배제
		return Outcome{Kind: OutcomeNoActivity, key: 0.0}
	}

	logValue := math.Log10(tradingValue)

	surge := 1.0
	if avgVolume > 0 {
		surge = float64(dayVolume) / avgVolume
	}
	surge = math.Min(math.Max(surge, surgeFloor), surgeCeil)

	return Outcome{Kind: OutcomeScored, key: round4(changePct * logValue * surge)}
}

// VolSurge computes the display surge ratio: round2(day/avg), 1.0 when
// no reference volume. 스코어 내부의 클램프와 별개로 원본 비율을 노출.
func VolSurge(dayVolume int64, avgVolume float64) float64 {
	if avgVolume <= 0 {
		return 1.0
	}
	return round2(float64(dayVolume) / avgVolume)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
