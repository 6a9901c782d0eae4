package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jinhae8971/stock-dashboard/internal/api"
	"github.com/jinhae8971/stock-dashboard/internal/api/handlers"
	"github.com/jinhae8971/stock-dashboard/internal/scheduler"
	"github.com/jinhae8971/stock-dashboard/internal/scheduler/jobs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `대시보드 REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 저장된 대시보드 조회 엔드포인트 제공
- 수집 트리거 제공 (--with-scheduler 필요)

Endpoints:
  GET  /health                  - Health check
  GET  /api/dashboard           - 전체 대시보드 조회
  GET  /api/dashboard/{market}  - kr/us 섹션 조회
  POST /api/fetch               - 수집 트리거

Example:
  go run ./cmd/dashboard serve
  go run ./cmd/dashboard serve --port 8091 --with-scheduler`,
	RunE: runServe,
}

var (
	servePort          string
	serveWithScheduler bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (기본값은 PORT 환경변수)")
	serveCmd.Flags().BoolVar(&serveWithScheduler, "with-scheduler", false, "정기 수집 스케줄러 함께 실행")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Stock Dashboard API Server ===")

	d, err := buildDeps(false)
	if err != nil {
		return err
	}

	if servePort != "" {
		d.config.Port = servePort
	}

	// 스케줄러 동시 실행 시 POST /api/fetch가 동작한다
	var sched *scheduler.Scheduler
	if serveWithScheduler {
		sched = scheduler.New(d.logger)
		fetchJob := jobs.NewFetchJob(d.collector, d.store, d.uploader, d.config, d.logger)
		if err := sched.AddJob(fetchJob); err != nil {
			return fmt.Errorf("add fetch job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 스케줄러 없이 띄우면 POST /api/fetch는 503
	dashboardHandler := handlers.NewDashboardHandler(d.store, nil, d.logger)
	if sched != nil {
		dashboardHandler = handlers.NewDashboardHandler(d.store, sched, d.logger)
	}

	router := api.NewRouter(dashboardHandler, d.logger)
	server := api.New(d.config, d.logger, router)

	go func() {
		if err := server.Start(); err != nil {
			d.logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.config.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/dashboard")
	fmt.Println("  GET  /api/dashboard/{market}")
	fmt.Println("  POST /api/fetch")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	d.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.logger.Info("Server stopped")
	return nil
}
