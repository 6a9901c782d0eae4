package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinhae8971/stock-dashboard/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	job := &fakeJob{name: "dashboard_fetch", schedule: "0 10 16 * * 1-5"}
	require.NoError(t, s.AddJob(job))

	// 같은 이름은 중복 등록 불가
	err := s.AddJob(&fakeJob{name: "dashboard_fetch", schedule: "0 0 * * * *"})
	assert.Error(t, err)

	// 잘못된 cron 표현식
	err = s.AddJob(&fakeJob{name: "broken", schedule: "not-a-schedule"})
	assert.Error(t, err)
}

func TestRunJobUnknown(t *testing.T) {
	s := New(logger.Nop())
	err := s.RunJob("missing")
	assert.Error(t, err)
}

func TestRunJobRecordsSuccess(t *testing.T) {
	s := New(logger.Nop())
	job := &fakeJob{name: "dashboard_fetch", schedule: "0 10 16 * * 1-5"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("dashboard_fetch")
	require.NoError(t, err)

	latest := history.Latest()
	require.NotNil(t, latest)
	assert.True(t, latest.Success)
	assert.Empty(t, latest.Error)
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := New(logger.Nop())
	s.maxRetries = 2
	s.retryDelay = 0

	job := &fakeJob{
		name:     "dashboard_fetch",
		schedule: "0 10 16 * * 1-5",
		err:      errors.New("yahoo unreachable"),
	}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("dashboard_fetch")
	require.NoError(t, err)

	latest := history.Latest()
	require.NotNil(t, latest)
	assert.False(t, latest.Success)
	assert.Contains(t, latest.Error, "yahoo unreachable")

	// 최초 시도 + 재시도 2회
	assert.Equal(t, int32(3), job.runs.Load())
}

func TestJobHistoryKeepsLast100(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: fmt.Sprintf("run-%d", i), Success: true})
	}

	assert.Len(t, h.Results, 100)
	assert.Equal(t, "run-50", h.Results[0].JobName)
	assert.Equal(t, "run-149", h.Latest().JobName)
}

func TestJobHistoryLatestEmpty(t *testing.T) {
	h := &JobHistory{}
	assert.Nil(t, h.Latest())
}
