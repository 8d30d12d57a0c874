package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// WatchJob periodically re-scores a fixed watchlist and flags risk
// category transitions. Previous categories are held in memory, so the
// first run after startup only establishes the baseline.
type WatchJob struct {
	analyzer *analysis.Analyzer
	tickers  []string
	schedule string
	logger   *logger.Logger

	mu       sync.Mutex
	previous map[string]string
}

// NewWatchJob creates a watchlist re-scoring job.
func NewWatchJob(analyzer *analysis.Analyzer, tickers []string, schedule string, log *logger.Logger) *WatchJob {
	return &WatchJob{
		analyzer: analyzer,
		tickers:  tickers,
		schedule: schedule,
		logger:   log,
		previous: make(map[string]string),
	}
}

// Name returns the job name
func (j *WatchJob) Name() string { return "watchlist_rescore" }

// Schedule returns the cron schedule expression
func (j *WatchJob) Schedule() string { return j.schedule }

// Run re-scores every watched ticker and logs category changes.
func (j *WatchJob) Run(ctx context.Context) error {
	if len(j.tickers) == 0 {
		return fmt.Errorf("watchlist is empty")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, ticker := range j.tickers {
		report := j.analyzer.Score(ctx, ticker, 0)
		ticker = report.Ticker
		category := report.Score.RiskCategory

		j.logger.WithFields(map[string]interface{}{
			"ticker":   ticker,
			"category": category,
		}).Info("Watchlist ticker re-scored")

		prev, seen := j.previous[ticker]
		if seen && prev != category {
			j.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"from":   prev,
				"to":     category,
			}).Warn("Risk category changed")
		}
		j.previous[ticker] = category
	}

	return nil
}
