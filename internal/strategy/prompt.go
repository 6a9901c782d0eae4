package strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/report"
)

// buildPrompt composes the Korean market-summary prompt from the
// cycle's aggregated data
func buildPrompt(indices contracts.Indices, kr, us contracts.MarketReport) string {
	var summary strings.Builder

	fmt.Fprintf(&summary, "[오늘 날짜] %s\n\n", report.NowKST())

	summary.WriteString("[주요 지수]\n")
	fmt.Fprintf(&summary, "- KOSPI: %s\n", indexLine(indices.Kospi))
	fmt.Fprintf(&summary, "- KOSDAQ: %s\n", indexLine(indices.Kosdaq))
	fmt.Fprintf(&summary, "- S&P 500: %s\n", indexLine(indices.SP500))
	fmt.Fprintf(&summary, "- NASDAQ: %s\n", indexLine(indices.Nasdaq))
	fmt.Fprintf(&summary, "- USD/KRW: %s\n", indexLine(indices.USDKRW))

	summary.WriteString("\n[한국 주도 섹터 Top3]\n")
	for _, s := range topSectors(kr.Sectors, 3) {
		fmt.Fprintf(&summary, "  %s: %+.2f%%\n", s.Name, s.AvgChangePct)
	}

	summary.WriteString("\n[한국 주도주 Top5]\n")
	for _, s := range topStocks(kr.TopStocks, 5) {
		fmt.Fprintf(&summary, "  %s (%s): %+.2f%%  현재가 %.0f원\n",
			s.Name, s.Sector, s.ChangePct, s.Price)
	}

	summary.WriteString("\n[미국 주도 섹터 Top3]\n")
	for _, s := range topSectors(us.Sectors, 3) {
		fmt.Fprintf(&summary, "  %s: %+.2f%%\n", s.Name, s.AvgChangePct)
	}

	summary.WriteString("\n[미국 주도주 Top5]\n")
	for _, s := range topStocks(us.TopStocks, 5) {
		fmt.Fprintf(&summary, "  %s (%s): %+.2f%%  $%.2f\n",
			s.Name, s.Sector, s.ChangePct, s.Price)
	}

	return fmt.Sprintf(`당신은 20년 경력의 전문 퀀트 트레이더입니다. 아래 시장 데이터를 분석하여
오늘의 매매전략을 정확하고 실용적으로 작성하세요.

%s

다음 4가지 섹션으로 JSON 형식으로 응답하세요. 각 섹션은 한국어로, 2-3문장 이내로 간결하게 작성:

{
  "overview": "시장 전반적 분위기와 오늘의 핵심 테마 (강세/약세/혼조, 섹터 로테이션 방향 등)",
  "action": "구체적 매매전략 (롱/숏 포지션, 타이밍, 진입/청산 기준)",
  "risk": "오늘 주목해야 할 리스크 요인과 손절 기준",
  "watchlist": "오늘 집중 관찰할 종목 3-4개와 간략한 이유 (종목명: 이유 형식)"
}

JSON만 응답하고 다른 텍스트는 포함하지 마세요.`, summary.String())
}

// indexLine formats one index quote, N/A when the level is missing
func indexLine(q contracts.IndexQuote) string {
	if q.Value == nil {
		return "N/A"
	}
	if q.ChangePct == nil {
		return fmt.Sprintf("%.2f", *q.Value)
	}
	return fmt.Sprintf("%.2f (%+.2f%%)", *q.Value, *q.ChangePct)
}

func topSectors(sectors []contracts.SectorSummary, n int) []contracts.SectorSummary {
	sorted := make([]contracts.SectorSummary, len(sectors))
	copy(sorted, sectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgChangePct > sorted[j].AvgChangePct
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func topStocks(stocks []contracts.ScoredStock, n int) []contracts.ScoredStock {
	if n > len(stocks) {
		n = len(stocks)
	}
	return stocks[:n]
}
