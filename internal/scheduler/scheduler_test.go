package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/internal/assemble"
	"github.com/duedil-labs/duedil/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	failures int32
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(_ context.Context) error {
	n := j.runs.Add(1)
	if n <= j.failures {
		return errors.New("transient failure")
	}
	return nil
}

func newTestScheduler() *Scheduler {
	return New(logger.NewNop()).WithRetry(2, time.Millisecond)
}

func TestScheduler_AddJob(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "rescore", schedule: "0 0 9 * * *"}
	require.NoError(t, s.AddJob(job))
	assert.Equal(t, []string{"rescore"}, s.GetAllJobs())

	err := s.AddJob(&fakeJob{name: "rescore", schedule: "@hourly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := newTestScheduler()

	err := s.AddJob(&fakeJob{name: "broken", schedule: "not a cron expr"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule")
}

func TestScheduler_RunJob(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "rescore", schedule: "0 0 9 * * *"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("rescore"))
	assert.Equal(t, int32(1), job.runs.Load())

	history, err := s.GetJobHistory("rescore")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
}

func TestScheduler_RunJob_Retries(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "flaky", schedule: "@hourly", failures: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("flaky"))
	assert.Equal(t, int32(3), job.runs.Load())

	history, err := s.GetJobHistory("flaky")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
}

func TestScheduler_RunJob_ExhaustsRetries(t *testing.T) {
	s := newTestScheduler()

	job := &fakeJob{name: "down", schedule: "@hourly", failures: 10}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("down"))

	history, err := s.GetJobHistory("down")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "transient failure", history.Results[0].Error)
}

func TestScheduler_RunJob_Unknown(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < 110; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}

	assert.Len(t, h.Results, 100)
	assert.Len(t, h.GetLatestResults(5), 5)
	assert.InDelta(t, 0.5, h.GetSuccessRate(), 0.01)

	empty := &JobHistory{}
	assert.Zero(t, empty.GetSuccessRate())
	assert.Empty(t, empty.GetLatestResults(3))
}

type watchProvider struct {
	data map[string]*assemble.CompanyData
}

func (p *watchProvider) Fetch(_ context.Context, ticker string) (*assemble.CompanyData, error) {
	return p.data[ticker], nil
}

func watchCompanyData() *assemble.CompanyData {
	return &assemble.CompanyData{
		BalanceSheet: []assemble.Statement{{
			EndDate: "2026-03-31",
			Items: map[string]float64{
				assemble.LineTotalAssets:           1000e6,
				assemble.LineWorkingCapital:        250e6,
				assemble.LineRetainedEarnings:      400e6,
				assemble.LineTotalLiabilitiesNetMI: 500e6,
				assemble.LineStockholdersEquity:    500e6,
			},
		}},
		IncomeStatement: []assemble.Statement{{
			EndDate: "2026-03-31",
			Items: map[string]float64{
				assemble.LineEBIT:         150e6,
				assemble.LineTotalRevenue: 900e6,
			},
		}},
		Info: assemble.CompanyInfo{
			Sector:    "Industrials",
			Currency:  "USD",
			MarketCap: func() *float64 { v := 1200e6; return &v }(),
		},
	}
}

func TestWatchJob_Run(t *testing.T) {
	log := logger.NewNop()
	provider := &watchProvider{data: map[string]*assemble.CompanyData{"ACME": watchCompanyData()}}
	clock := func() time.Time { return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC) }
	analyzer := analysis.New(assemble.New(provider, log).WithClock(clock), altman.NewEngine(), nil, log)

	job := NewWatchJob(analyzer, []string{"ACME"}, "0 0 9 * * *", log)
	assert.Equal(t, "watchlist_rescore", job.Name())
	assert.Equal(t, "0 0 9 * * *", job.Schedule())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, altman.ZoneSafe, job.previous["ACME"])

	// Data disappears upstream; the category transition is tracked.
	delete(provider.data, "ACME")
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, altman.ErrNoData, job.previous["ACME"])
}

func TestWatchJob_EmptyWatchlist(t *testing.T) {
	log := logger.NewNop()
	job := NewWatchJob(nil, nil, "@hourly", log)
	assert.Error(t, job.Run(context.Background()))
}
