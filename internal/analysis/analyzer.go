// Package analysis orchestrates a full credit assessment for one or
// more tickers: statement assembly, Z-Score computation and news risk
// intelligence.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/internal/assemble"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// maxConcurrent caps parallel ticker analyses so batch runs do not
// hammer the upstream data provider.
const maxConcurrent = 4

// NewsProvider produces a risk news summary for a ticker. Satisfied by
// news.Agent; nil disables the news section.
type NewsProvider interface {
	RiskSummary(ctx context.Context, ticker string) string
}

// TickerReport is the complete assessment for one ticker.
type TickerReport struct {
	Ticker      string           `json:"ticker"`
	Metadata    *altman.Metadata `json:"metadata,omitempty"`
	Snapshot    *altman.Snapshot `json:"snapshot,omitempty"`
	Score       altman.Result    `json:"score"`
	NewsSummary string           `json:"news_summary,omitempty"`
	Err         string           `json:"error,omitempty"`
}

// Analyzer wires the assembler, the scoring engine and the news agent
// into one entry point.
type Analyzer struct {
	assembler *assemble.Assembler
	engine    *altman.Engine
	news      NewsProvider
	logger    *logger.Logger
}

// New creates an analyzer. news may be nil to skip news intelligence.
func New(assembler *assemble.Assembler, engine *altman.Engine, news NewsProvider, log *logger.Logger) *Analyzer {
	return &Analyzer{
		assembler: assembler,
		engine:    engine,
		news:      news,
		logger:    log,
	}
}

// AnalyzeOne runs the full assessment for a single ticker. shockPct
// applies a revenue stress before scoring; pass 0 for the base case.
// Data failures never return an error: they surface in the report's
// risk category so a batch keeps going.
func (a *Analyzer) AnalyzeOne(ctx context.Context, ticker string, shockPct float64) *TickerReport {
	return a.analyze(ctx, ticker, shockPct, true)
}

// Score computes just the Z-Score for a ticker, skipping news. Used by
// the stress-test endpoint and the watch job where news intelligence
// is not needed.
func (a *Analyzer) Score(ctx context.Context, ticker string, shockPct float64) *TickerReport {
	return a.analyze(ctx, ticker, shockPct, false)
}

func (a *Analyzer) analyze(ctx context.Context, ticker string, shockPct float64, withNews bool) *TickerReport {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	report := &TickerReport{Ticker: ticker}

	snap, meta := a.assembler.Assemble(ctx, ticker)
	report.Snapshot = snap
	report.Metadata = meta
	if snap == nil {
		report.Err = fmt.Sprintf("no financial data available for %s", ticker)
	}

	var m altman.Metadata
	if meta != nil {
		m = *meta
	} else {
		m = altman.Metadata{Ticker: ticker, Sector: "Unknown", Industry: "Unknown"}
	}

	report.Score = a.engine.ScoreStressed(snap, m, shockPct)

	a.logger.WithFields(map[string]interface{}{
		"ticker":   ticker,
		"category": report.Score.RiskCategory,
		"formula":  report.Score.FormulaUsed,
	}).Info("Ticker analysis complete")

	if withNews && a.news != nil {
		report.NewsSummary = a.news.RiskSummary(ctx, ticker)
	}

	return report
}

// AnalyzeAll assesses a batch of tickers concurrently. One ticker's
// failure never affects the others; every requested ticker appears in
// the result map.
func (a *Analyzer) AnalyzeAll(ctx context.Context, tickers []string, shockPct float64) map[string]*TickerReport {
	reports := make(map[string]*TickerReport, len(tickers))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			report := a.AnalyzeOne(gctx, ticker, shockPct)
			mu.Lock()
			reports[report.Ticker] = report
			mu.Unlock()
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return reports
}
