package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/report"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "저장된 대시보드 요약",
	Long: `마지막으로 저장된 대시보드의 요약을 표시합니다.

표시 정보:
- 생성 시각
- 주요 지수
- 시장별 주도주 Top N
- AI 전략 요약

Example:
  go run ./cmd/dashboard status
  go run ./cmd/dashboard status --top 5`,
	RunE: runStatus,
}

var (
	statusTop int
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().IntVar(&statusTop, "top", 10, "표시할 주도주 수")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store := report.NewStore(cfg.OutputPath, logger.Nop())

	dashboard, err := store.Load()
	if err != nil {
		return fmt.Errorf("대시보드 없음 (먼저 fetch를 실행하세요): %w", err)
	}

	fmt.Println("=== Stock Dashboard Status ===")
	fmt.Printf("Updated: %s\n\n", dashboard.UpdatedAt)

	printIndices(dashboard.Indices)
	printMarket("🇰🇷 한국", dashboard.KR, statusTop)
	printMarket("🇺🇸 미국", dashboard.US, statusTop)

	if dashboard.Strategy.Overview != "" {
		fmt.Println("📋 AI 전략")
		fmt.Printf("   %s\n", dashboard.Strategy.Overview)
	}

	return nil
}

func printIndices(indices contracts.Indices) {
	fmt.Println("📈 주요 지수")
	printIndex("KOSPI", indices.Kospi)
	printIndex("KOSDAQ", indices.Kosdaq)
	printIndex("S&P 500", indices.SP500)
	printIndex("NASDAQ", indices.Nasdaq)
	printIndex("DOW", indices.Dow)
	printIndex("USD/KRW", indices.USDKRW)
	fmt.Println()
}

func printIndex(name string, q contracts.IndexQuote) {
	if q.Value == nil {
		fmt.Printf("   %-8s N/A\n", name)
		return
	}
	if q.ChangePct != nil {
		fmt.Printf("   %-8s %.2f (%+.2f%%)\n", name, *q.Value, *q.ChangePct)
		return
	}
	fmt.Printf("   %-8s %.2f\n", name, *q.Value)
}

func printMarket(title string, market contracts.MarketReport, top int) {
	fmt.Printf("%s 주도주 Top %d\n", title, top)

	if len(market.TopStocks) == 0 {
		fmt.Println("   (없음)")
		fmt.Println()
		return
	}

	stocks := market.TopStocks
	if top > 0 && len(stocks) > top {
		stocks = stocks[:top]
	}

	for i, s := range stocks {
		fmt.Printf("   %2d. %-20s %+.2f%%  score=%.2f  [%s]\n",
			i+1, s.Name, s.ChangePct, s.Score, s.Sector)
	}
	fmt.Println()
}
