package jobs

import (
	"context"
	"fmt"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/internal/report"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

// cycleRunner runs one full dashboard collection cycle.
type cycleRunner interface {
	RunCycle(ctx context.Context) (*contracts.Dashboard, error)
}

// dashboardStore persists the dashboard to local storage.
type dashboardStore interface {
	Save(dashboard *contracts.Dashboard) error
}

// reportUploader pushes the serialized dashboard to a remote repo.
type reportUploader interface {
	Enabled() bool
	Upload(ctx context.Context, content []byte, message string) error
}

// FetchJob runs the full dashboard fetch cycle on schedule
// ⭐ SSOT: 정기 수집 스케줄은 이 Job에서만
type FetchJob struct {
	collector cycleRunner
	store     dashboardStore
	uploader  reportUploader
	config    *config.Config
	logger    *logger.Logger
}

// NewFetchJob creates a new dashboard fetch job
func NewFetchJob(col cycleRunner, store dashboardStore, uploader reportUploader,
	cfg *config.Config, log *logger.Logger) *FetchJob {
	return &FetchJob{
		collector: col,
		store:     store,
		uploader:  uploader,
		config:    cfg,
		logger:    log,
	}
}

// Name returns the job name
func (j *FetchJob) Name() string {
	return "dashboard_fetch"
}

// Schedule returns the cron schedule from config
func (j *FetchJob) Schedule() string {
	return j.config.Fetch.Schedule
}

// Run executes one fetch cycle: 수집 → 로컬 저장 → GitHub 업로드.
// 업로드 실패는 경고로만 남긴다 (로컬 파일은 이미 저장됨).
func (j *FetchJob) Run(ctx context.Context) error {
	dashboard, err := j.collector.RunCycle(ctx)
	if err != nil {
		return fmt.Errorf("fetch cycle: %w", err)
	}

	if err := j.store.Save(dashboard); err != nil {
		return fmt.Errorf("save dashboard: %w", err)
	}

	if j.uploader == nil || !j.uploader.Enabled() {
		j.logger.Info("GitHub 업로드 스킵 (로컬 파일만 저장)")
		return nil
	}

	data, err := report.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}

	message := fmt.Sprintf("chore: update market data %s", dashboard.UpdatedAt)
	if err := j.uploader.Upload(ctx, data, message); err != nil {
		j.logger.WithError(err).Warn("GitHub 업로드 실패 (로컬 파일은 저장됨)")
	}

	return nil
}
