package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/internal/contracts"
	"github.com/jinhae8971/stock-dashboard/pkg/config"
	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

type fakeRunner struct {
	dashboard *contracts.Dashboard
	err       error
}

func (f *fakeRunner) RunCycle(ctx context.Context) (*contracts.Dashboard, error) {
	return f.dashboard, f.err
}

type fakeStore struct {
	saved *contracts.Dashboard
	err   error
}

func (f *fakeStore) Save(d *contracts.Dashboard) error {
	f.saved = d
	return f.err
}

type fakeUploader struct {
	enabled  bool
	message  string
	uploaded []byte
	err      error
}

func (f *fakeUploader) Enabled() bool { return f.enabled }

func (f *fakeUploader) Upload(ctx context.Context, content []byte, message string) error {
	f.uploaded = content
	f.message = message
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Fetch: config.FetchConfig{Schedule: "0 10 16 * * 1-5"},
	}
}

func sampleDashboard() *contracts.Dashboard {
	return &contracts.Dashboard{
		UpdatedAt: "2026년 08월 31일 16:10 KST",
		KR:        contracts.MarketReport{},
		US:        contracts.MarketReport{},
	}
}

func TestFetchJobMetadata(t *testing.T) {
	job := NewFetchJob(&fakeRunner{}, &fakeStore{}, nil, testConfig(), logger.Nop())

	assert.Equal(t, "dashboard_fetch", job.Name())
	assert.Equal(t, "0 10 16 * * 1-5", job.Schedule())
}

func TestFetchJobRunSavesAndUploads(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{enabled: true}
	job := NewFetchJob(&fakeRunner{dashboard: sampleDashboard()}, store, uploader,
		testConfig(), logger.Nop())

	require.NoError(t, job.Run(context.Background()))

	require.NotNil(t, store.saved)
	assert.Equal(t, "2026년 08월 31일 16:10 KST", store.saved.UpdatedAt)

	assert.NotEmpty(t, uploader.uploaded)
	assert.Equal(t, "chore: update market data 2026년 08월 31일 16:10 KST", uploader.message)
}

func TestFetchJobRunSkipsDisabledUploader(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{enabled: false}
	job := NewFetchJob(&fakeRunner{dashboard: sampleDashboard()}, store, uploader,
		testConfig(), logger.Nop())

	require.NoError(t, job.Run(context.Background()))

	require.NotNil(t, store.saved)
	assert.Empty(t, uploader.uploaded)
}

func TestFetchJobRunCycleError(t *testing.T) {
	store := &fakeStore{}
	job := NewFetchJob(&fakeRunner{err: errors.New("network down")}, store, nil,
		testConfig(), logger.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch cycle")
	assert.Nil(t, store.saved)
}

func TestFetchJobUploadFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{}
	uploader := &fakeUploader{enabled: true, err: errors.New("403 forbidden")}
	job := NewFetchJob(&fakeRunner{dashboard: sampleDashboard()}, store, uploader,
		testConfig(), logger.Nop())

	// 업로드 실패해도 작업 자체는 성공
	require.NoError(t, job.Run(context.Background()))
	require.NotNil(t, store.saved)
}
