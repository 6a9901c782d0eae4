package collector

import (
	"context"
	"math"
	"strings"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/external/naver"
	"github.com/jinhae8971/stock-dashboard/internal/external/yahoo"
	"github.com/jinhae8971/stock-dashboard/internal/ranking"
	"github.com/jinhae8971/stock-dashboard/internal/report"
	"github.com/jinhae8971/stock-dashboard/internal/strategy"
	"github.com/jinhae8971/stock-dashboard/internal/universe"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// usPoolPerSector bounds constituent fetches per focus sector
const usPoolPerSector = 5

// quoteSource abstracts the primary quote feed (테스트 주입점)
type quoteSource interface {
	FetchQuote(ctx context.Context, symbol string) (*yahoo.Quote, error)
}

// krFallbackSource abstracts the KR fallback feed
type krFallbackSource interface {
	FetchQuote(ctx context.Context, code string) (*naver.Quote, error)
}

// Collector runs one full fetch-and-aggregate cycle over both markets
// ⭐ SSOT: 수집 사이클 오케스트레이션은 여기서만
type Collector struct {
	quotes     quoteSource
	krFallback krFallbackSource
	aggregator *ranking.Aggregator
	strategy   *strategy.Generator
	logger     *logger.Logger
	focusK     int
}

// New creates a collector
func New(quotes *yahoo.Client, krFallback *naver.Client, aggregator *ranking.Aggregator,
	strategyGen *strategy.Generator, log *logger.Logger, focusK int) *Collector {
	if focusK <= 0 {
		focusK = 5
	}
	return &Collector{
		quotes:     quotes,
		krFallback: krFallback,
		aggregator: aggregator,
		strategy:   strategyGen,
		logger:     log,
		focusK:     focusK,
	}
}

// RunCycle fetches indices and both markets, generates the strategy
// and assembles the dashboard. 일부 종목·지수 실패는 결과 축소일 뿐
// 사이클 실패가 아니다.
func (c *Collector) RunCycle(ctx context.Context) (*contracts.Dashboard, error) {
	c.logger.Info("Market dashboard fetch 시작")

	indices := c.FetchIndices(ctx)
	kr := c.CollectKR(ctx)
	us := c.CollectUS(ctx)

	dashboard := &contracts.Dashboard{
		UpdatedAt: report.NowKST(),
		Indices:   indices,
		KR:        *kr,
		US:        *us,
	}

	if c.strategy != nil {
		dashboard.Strategy = c.strategy.Generate(ctx, indices, *kr, *us)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// FetchIndices collects the tracked index quotes. 실패한 지수는 null로
// 남긴다 (항목 자체는 유지).
func (c *Collector) FetchIndices(ctx context.Context) contracts.Indices {
	c.logger.Info("지수 데이터 수집 중...")

	var indices contracts.Indices
	for _, idx := range universe.Indices() {
		quote, err := c.quotes.FetchQuote(ctx, idx.Symbol)
		if err != nil {
			c.logger.WithError(err).WithField("index", idx.Key).Warn("지수 수집 실패")
			continue
		}

		value := round2(quote.LastPrice)
		entry := contracts.IndexQuote{Value: &value}
		if quote.PreviousClose != 0 {
			chg := round2((quote.LastPrice - quote.PreviousClose) / quote.PreviousClose * 100)
			entry.ChangePct = &chg
		}

		setIndex(&indices, idx.Key, entry)
	}
	return indices
}

// CollectKR fetches the full KR sector universe and aggregates it
func (c *Collector) CollectKR(ctx context.Context) *contracts.MarketReport {
	c.logger.Info("한국 증시 데이터 수집 중...")

	var snapshots []contracts.RawSnapshot
	for _, sector := range universe.KRSectors() {
		for _, ticker := range sector.Tickers {
			snap, err := c.fetchKRSnapshot(ctx, ticker, sector.Name)
			if err != nil {
				// 개별 종목 실패는 사이클을 멈추지 않는다
				c.logger.WithError(err).WithField("ticker", ticker).Debug("KR 종목 수집 실패")
				continue
			}
			snapshots = append(snapshots, *snap)
		}
	}

	return c.aggregator.Aggregate(snapshots, contracts.MarketKR)
}

// CollectUS fetches sector ETFs, narrows to the strongest sectors and
// aggregates their constituents. 섹터 목록은 ETF 등락률 기준, 주도주는
// 주도 섹터 구성 종목의 집계 결과.
func (c *Collector) CollectUS(ctx context.Context) *contracts.MarketReport {
	c.logger.Info("미국 증시 데이터 수집 중...")

	sectors := c.fetchUSSectorSummaries(ctx)

	// 주도 섹터 로테이션: 수집 범위를 상위 섹터로 제한
	focus := ranking.SelectFocusSectors(sectors, c.focusK)

	var snapshots []contracts.RawSnapshot
	for _, sector := range universe.USSectorStocks() {
		if _, ok := focus[sector.Name]; !ok {
			continue
		}

		tickers := sector.Tickers
		if len(tickers) > usPoolPerSector {
			tickers = tickers[:usPoolPerSector]
		}

		for _, ticker := range tickers {
			quote, err := c.quotes.FetchQuote(ctx, ticker)
			if err != nil {
				c.logger.WithError(err).WithField("ticker", ticker).Debug("US 종목 수집 실패")
				continue
			}

			snapshots = append(snapshots, contracts.RawSnapshot{
				Ticker:        ticker,
				Name:          displayName(quote.ShortName, ticker),
				Sector:        sector.Name,
				Market:        contracts.MarketUS,
				LastPrice:     quote.LastPrice,
				PreviousClose: quote.PreviousClose,
				DayVolume:     quote.DayVolume,
				AvgVolume:     quote.AvgVolume3M,
			})
		}
	}

	aggregated := c.aggregator.Aggregate(snapshots, contracts.MarketUS)
	return &contracts.MarketReport{
		Sectors:   sectors,
		TopStocks: aggregated.TopStocks,
	}
}

// fetchUSSectorSummaries derives sector changes from the proxy ETFs
func (c *Collector) fetchUSSectorSummaries(ctx context.Context) []contracts.SectorSummary {
	summaries := make([]contracts.SectorSummary, 0, len(universe.USSectorETFs()))
	for _, etf := range universe.USSectorETFs() {
		quote, err := c.quotes.FetchQuote(ctx, etf.Symbol)
		if err != nil {
			c.logger.WithError(err).WithField("etf", etf.Symbol).Warn("US 섹터 ETF 수집 실패")
			continue
		}
		if quote.PreviousClose == 0 {
			continue
		}

		chg := round2((quote.LastPrice - quote.PreviousClose) / quote.PreviousClose * 100)
		summaries = append(summaries, contracts.SectorSummary{
			Name:         etf.Name,
			AvgChangePct: chg,
		})
	}
	return summaries
}

// fetchKRSnapshot fetches one KR ticker, falling back to the Naver
// scraper when the primary feed fails
func (c *Collector) fetchKRSnapshot(ctx context.Context, ticker, sectorName string) (*contracts.RawSnapshot, error) {
	quote, err := c.quotes.FetchQuote(ctx, ticker)
	if err == nil {
		return &contracts.RawSnapshot{
			Ticker:        ticker,
			Name:          universe.KRName(ticker),
			Sector:        sectorName,
			Market:        contracts.MarketKR,
			LastPrice:     quote.LastPrice,
			PreviousClose: quote.PreviousClose,
			DayVolume:     quote.DayVolume,
			AvgVolume:     quote.AvgVolume3M,
		}, nil
	}

	if c.krFallback == nil || !strings.HasSuffix(ticker, ".KS") {
		return nil, err
	}

	c.logger.WithField("ticker", ticker).Debug("기본 피드 실패: Naver 폴백 시도")
	fallback, ferr := c.krFallback.FetchQuote(ctx, strings.TrimSuffix(ticker, ".KS"))
	if ferr != nil {
		return nil, err // 원래 실패 사유를 보존
	}

	return &contracts.RawSnapshot{
		Ticker:        ticker,
		Name:          universe.KRName(ticker),
		Sector:        sectorName,
		Market:        contracts.MarketKR,
		LastPrice:     fallback.LastPrice,
		PreviousClose: fallback.PreviousClose,
		DayVolume:     fallback.DayVolume,
		AvgVolume:     0, // 폴백 소스에는 평균 거래량 없음 → parity 가정
	}, nil
}

// displayName truncates feed names the way the dashboard renders them
func displayName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	runes := []rune(name)
	if len(runes) > 18 {
		return string(runes[:18])
	}
	return name
}

// setIndex routes an index quote into its dashboard slot
func setIndex(indices *contracts.Indices, key string, quote contracts.IndexQuote) {
	switch key {
	case "kospi":
		indices.Kospi = quote
	case "kosdaq":
		indices.Kosdaq = quote
	case "sp500":
		indices.SP500 = quote
	case "nasdaq":
		indices.Nasdaq = quote
	case "dow":
		indices.Dow = quote
	case "usdkrw":
		indices.USDKRW = quote
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
