package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/scoring"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

func newTestAggregator(topN int) *Aggregator {
	return NewAggregator(scoring.NewValidator(logger.Nop()), logger.Nop(), topN)
}

// snap builds a snapshot whose change_pct lands exactly on chg
func snap(ticker, sector string, chg float64, volume int64) contracts.RawSnapshot {
	return contracts.RawSnapshot{
		Ticker:        ticker,
		Name:          ticker,
		Sector:        sector,
		Market:        contracts.MarketKR,
		LastPrice:     100 + chg,
		PreviousClose: 100,
		DayVolume:     volume,
		AvgVolume:     float64(volume),
	}
}

func TestAggregate_OutlierExcludedEverywhere(t *testing.T) {
	// 세 섹터 × 두 종목, 그중 하나가 +35% (KR 제한폭 초과)
	snapshots := []contracts.RawSnapshot{
		snap("A1", "반도체", 5.0, 1000),
		snap("A2", "반도체", 35.0, 1000), // 이상치
		snap("B1", "금융", 1.0, 1000),
		snap("B2", "금융", 2.0, 1000),
		snap("C1", "자동차", -1.0, 1000),
		snap("C2", "자동차", 3.0, 1000),
	}

	agg := newTestAggregator(10)
	report := agg.Aggregate(snapshots, contracts.MarketKR)

	// 섹터 평균은 남은 유효 종목만 사용
	require.Len(t, report.Sectors, 3)
	assert.Equal(t, "반도체", report.Sectors[0].Name)
	assert.Equal(t, 5.0, report.Sectors[0].AvgChangePct) // 35%는 평균에서 제외
	assert.Equal(t, 1.5, report.Sectors[1].AvgChangePct)
	assert.Equal(t, 1.0, report.Sectors[2].AvgChangePct)

	// 이상치 종목은 TOP N에도 없다
	for _, s := range report.TopStocks {
		assert.NotEqual(t, "A2", s.Ticker)
	}
}

func TestAggregate_ZeroVolumeNeverInTopStocks(t *testing.T) {
	snapshots := []contracts.RawSnapshot{
		snap("HOT", "반도체", 5.0, 0), // 거래량 0: 점수와 무관하게 배제
		snap("OK", "반도체", 1.0, 1000),
	}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)

	require.Len(t, report.TopStocks, 1)
	assert.Equal(t, "OK", report.TopStocks[0].Ticker)

	// 거래량 0 종목은 no-activity 경로로도 0점이어야 한다 (두 배제 경로의 합치)
	for _, s := range report.TopStocks {
		assert.Greater(t, s.Volume, int64(0))
	}
}

func TestAggregate_TopNLength(t *testing.T) {
	var snapshots []contracts.RawSnapshot
	for i := 0; i < 15; i++ {
		snapshots = append(snapshots, snap(string(rune('A'+i)), "반도체", float64(i%8)+0.5, 1000))
	}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)
	assert.Len(t, report.TopStocks, 10)

	few := newTestAggregator(10).Aggregate(snapshots[:3], contracts.MarketKR)
	assert.Len(t, few.TopStocks, 3) // min(10, 유효 후보 수)
}

func TestAggregate_StableTieOrdering(t *testing.T) {
	// 동일 입력이 동일 점수를 내면 입력 순서가 유지된다
	snapshots := []contracts.RawSnapshot{
		snap("FIRST", "반도체", 2.0, 1000),
		snap("SECOND", "금융", 2.0, 1000),
		snap("THIRD", "자동차", 2.0, 1000),
	}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)

	require.Len(t, report.TopStocks, 3)
	assert.Equal(t, "FIRST", report.TopStocks[0].Ticker)
	assert.Equal(t, "SECOND", report.TopStocks[1].Ticker)
	assert.Equal(t, "THIRD", report.TopStocks[2].Ticker)
}

func TestAggregate_SectorWithNoValidStocksOmitted(t *testing.T) {
	snapshots := []contracts.RawSnapshot{
		snap("A1", "반도체", 1.0, 1000),
		snap("B1", "헬스케어", 40.0, 1000), // 섹터 전체가 이상치
	}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)

	require.Len(t, report.Sectors, 1)
	assert.Equal(t, "반도체", report.Sectors[0].Name)
}

func TestAggregate_SnapshotWithoutPreviousCloseSkipped(t *testing.T) {
	broken := contracts.RawSnapshot{
		Ticker: "BROKEN", Sector: "반도체", Market: contracts.MarketKR,
		LastPrice: 100, PreviousClose: 0, DayVolume: 1000,
	}
	snapshots := []contracts.RawSnapshot{broken, snap("OK", "반도체", 1.0, 1000)}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)

	require.Len(t, report.TopStocks, 1)
	assert.Equal(t, "OK", report.TopStocks[0].Ticker)
	require.Len(t, report.Sectors, 1)
	assert.Equal(t, 1.0, report.Sectors[0].AvgChangePct)
}

func TestAggregate_DeclinersRankBelowPositives(t *testing.T) {
	snapshots := []contracts.RawSnapshot{
		snap("DOWN", "반도체", -10.0, 50_000_000), // 대량 매도라도
		snap("UP", "반도체", 0.5, 1000),
	}

	report := newTestAggregator(10).Aggregate(snapshots, contracts.MarketKR)

	require.Len(t, report.TopStocks, 2)
	assert.Equal(t, "UP", report.TopStocks[0].Ticker)
	assert.Equal(t, "DOWN", report.TopStocks[1].Ticker)
	assert.Equal(t, -10.0, report.TopStocks[1].Score)
}

func TestAggregate_ScoredStockFields(t *testing.T) {
	s := contracts.RawSnapshot{
		Ticker: "005930.KS", Name: "삼성전자", Sector: "반도체",
		Market: contracts.MarketKR,
		LastPrice: 72500.4, PreviousClose: 71000,
		DayVolume: 2_000_000, AvgVolume: 1_000_000,
	}

	report := newTestAggregator(10).Aggregate([]contracts.RawSnapshot{s}, contracts.MarketKR)

	require.Len(t, report.TopStocks, 1)
	got := report.TopStocks[0]
	assert.Equal(t, "삼성전자", got.Name)
	assert.Equal(t, 72500.0, got.Price) // KR은 원 단위 반올림
	assert.Equal(t, 2.11, got.ChangePct)
	assert.Equal(t, int64(2_000_000), got.Volume)
	assert.Equal(t, int64(72500.4*2_000_000), got.TradingValue)
	assert.Equal(t, 2.0, got.VolSurge)
	assert.Greater(t, got.Score, 0.0)
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := newTestAggregator(10).Aggregate(nil, contracts.MarketKR)
	assert.Empty(t, report.Sectors)
	assert.Empty(t, report.TopStocks)
}
