package ranking

import (
	"math"
	"sort"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/scoring"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// Aggregator turns raw per-ticker snapshots into one market's
// sector summaries and leading-stock ranking.
// ⭐ SSOT: 섹터 집계 + TOP N 선정은 여기서만
type Aggregator struct {
	validator *scoring.Validator
	logger    *logger.Logger
	topN      int
}

// NewAggregator creates a new market aggregator
func NewAggregator(validator *scoring.Validator, log *logger.Logger, topN int) *Aggregator {
	if topN <= 0 {
		topN = 10
	}
	return &Aggregator{
		validator: validator,
		logger:    log,
		topN:      topN,
	}
}

// Aggregate runs the full pipeline over one market's snapshots:
// 검증 → 스코어링 → 섹터 평균 → 거래량 필터 → TOP N.
// 입력 순서가 같으면 출력 순서도 항상 같다 (stable sort, 섹터는
// 최초 등장 순서 유지).
func (a *Aggregator) Aggregate(snapshots []contracts.RawSnapshot, market contracts.Market) *contracts.MarketReport {
	sectorOrder := make([]string, 0)
	sectorChanges := make(map[string][]float64)
	allStocks := make([]contracts.ScoredStock, 0, len(snapshots))

	for _, snap := range snapshots {
		chg, ok := snap.ChangePct()
		if !ok {
			// 전일 종가 없음: 등락률을 만들 수 없는 스냅샷은 버린다
			a.logger.WithFields(map[string]interface{}{
				"ticker": snap.Ticker,
				"market": market.String(),
			}).Debug("스냅샷 등락률 계산 불가, 스킵")
			continue
		}

		chg, ok = a.validator.Validate(chg, market, snap.Ticker)
		if !ok {
			// 이상치: 섹터 평균에도, 후보 풀에도 넣지 않는다
			continue
		}

		if _, seen := sectorChanges[snap.Sector]; !seen {
			sectorOrder = append(sectorOrder, snap.Sector)
		}
		sectorChanges[snap.Sector] = append(sectorChanges[snap.Sector], chg)

		outcome := scoring.Score(chg, snap.LastPrice, snap.DayVolume, snap.AvgVolume)
		allStocks = append(allStocks, contracts.ScoredStock{
			Ticker:       snap.Ticker,
			Name:         snap.Name,
			Sector:       snap.Sector,
			Price:        roundPrice(snap.LastPrice, market),
			ChangePct:    chg,
			Volume:       snap.DayVolume,
			TradingValue: int64(snap.LastPrice * float64(snap.DayVolume)),
			VolSurge:     scoring.VolSurge(snap.DayVolume, snap.AvgVolume),
			Score:        outcome.Key(),
		})
	}

	report := &contracts.MarketReport{
		Sectors:   a.buildSectorSummaries(sectorOrder, sectorChanges),
		TopStocks: a.selectTopStocks(allStocks, market),
	}

	a.logger.WithFields(map[string]interface{}{
		"market":  market.String(),
		"input":   len(snapshots),
		"scored":  len(allStocks),
		"sectors": len(report.Sectors),
		"top":     len(report.TopStocks),
	}).Info("시장 집계 완료")

	return report
}

// buildSectorSummaries emits a summary per sector that produced at
// least one accepted stock, in first-encounter order
func (a *Aggregator) buildSectorSummaries(order []string, changes map[string][]float64) []contracts.SectorSummary {
	summaries := make([]contracts.SectorSummary, 0, len(order))
	for _, name := range order {
		chgs := changes[name]
		if len(chgs) == 0 {
			continue
		}
		sum := 0.0
		for _, c := range chgs {
			sum += c
		}
		summaries = append(summaries, contracts.SectorSummary{
			Name:         name,
			AvgChangePct: round2(sum / float64(len(chgs))),
		})
	}
	return summaries
}

// selectTopStocks filters the pool to traded tickers and picks the
// score-ranked top N. 거래량 0 종목은 점수와 무관하게 완전 배제.
func (a *Aggregator) selectTopStocks(pool []contracts.ScoredStock, market contracts.Market) []contracts.ScoredStock {
	valid := make([]contracts.ScoredStock, 0, len(pool))
	for _, s := range pool {
		if s.Volume > 0 {
			valid = append(valid, s)
		}
	}

	if excluded := len(pool) - len(valid); excluded > 0 {
		a.logger.WithFields(map[string]interface{}{
			"market":   market.String(),
			"excluded": excluded,
		}).Warn("거래량 0 종목 TOP N 후보에서 제외")
	}

	// 동점은 입력 순서 유지 (stable)
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Score > valid[j].Score
	})

	if len(valid) > a.topN {
		valid = valid[:a.topN]
	}
	return valid
}

// roundPrice matches the display rounding of each market:
// KR은 원 단위 정수, US는 센트 2자리
func roundPrice(price float64, market contracts.Market) float64 {
	if market == contracts.MarketKR {
		return math.Round(price)
	}
	return round2(price)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
