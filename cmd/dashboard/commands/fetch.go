package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jinhae8971/stock-dashboard/internal/scheduler/jobs"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "대시보드 1회 수집",
	Long: `지수/한국/미국 데이터를 1회 수집해 대시보드 JSON을 생성합니다.

이 명령어는:
- 주요 지수 6종 조회
- 한국 8개 섹터 전 종목 수집 + 주도주 Top 10
- 미국 섹터 ETF 로테이션 + 상위 5개 섹터 종목 수집
- AI 투자 전략 생성 (ANTHROPIC_API_KEY 필요)
- 로컬 저장 및 GitHub 업로드 (GITHUB_TOKEN 필요)

Example:
  go run ./cmd/dashboard fetch
  go run ./cmd/dashboard fetch --skip-strategy --skip-upload`,
	RunE: runFetch,
}

var (
	fetchSkipStrategy bool
	fetchSkipUpload   bool
	fetchTimeout      time.Duration
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchSkipStrategy, "skip-strategy", false, "AI 전략 생성 생략")
	fetchCmd.Flags().BoolVar(&fetchSkipUpload, "skip-upload", false, "GitHub 업로드 생략")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 15*time.Minute, "수집 전체 타임아웃")
}

func runFetch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Stock Dashboard Fetch ===")

	d, err := buildDeps(fetchSkipStrategy)
	if err != nil {
		return err
	}

	job := jobs.NewFetchJob(d.collector, d.store, d.uploader, d.config, d.logger)
	if fetchSkipUpload {
		job = jobs.NewFetchJob(d.collector, d.store, nil, d.config, d.logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	// Ctrl+C로 진행 중 수집 중단
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	fmt.Printf("\n✅ Dashboard saved to %s (%.1fs)\n", d.config.OutputPath, time.Since(start).Seconds())
	return nil
}
