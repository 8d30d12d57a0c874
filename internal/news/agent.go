// Package news gathers risk-relevant news snippets for a ticker and
// condenses them into a summary. Summarization degrades gracefully:
// without a credential the agent returns the raw snippets with an
// explanatory prefix instead of failing the analysis.
package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/duedil-labs/duedil/internal/external/ddg"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// Searcher retrieves news snippets for a ticker. Implemented by the
// DuckDuckGo client; faked in tests.
type Searcher interface {
	SearchNews(ctx context.Context, ticker string) []ddg.Snippet
}

// Summarizer condenses raw snippets into a prose risk summary.
type Summarizer interface {
	Summarize(ctx context.Context, ticker string, snippets []ddg.Snippet) (string, error)
}

// Agent combines search and summarization. summarizer may be nil, in
// which case raw snippets are returned verbatim behind a prefix.
type Agent struct {
	searcher   Searcher
	summarizer Summarizer
	logger     *logger.Logger
}

// NewAgent creates a news agent. Pass a nil summarizer to disable
// AI summarization.
func NewAgent(searcher Searcher, summarizer Summarizer, log *logger.Logger) *Agent {
	return &Agent{
		searcher:   searcher,
		summarizer: summarizer,
		logger:     log,
	}
}

// RiskSummary searches for litigation/liquidity/bankruptcy news about
// a ticker and returns a human-readable summary. Never returns an
// error; every failure mode degrades to a readable message.
func (a *Agent) RiskSummary(ctx context.Context, ticker string) string {
	snippets := a.searcher.SearchNews(ctx, ticker)
	return a.Summarize(ctx, ticker, snippets)
}

// Summarize condenses already-fetched snippets.
func (a *Agent) Summarize(ctx context.Context, ticker string, snippets []ddg.Snippet) string {
	if len(snippets) == 0 {
		return "No news found."
	}

	raw := FormatSnippets(snippets)

	if a.summarizer == nil {
		return "API key not provided. Returning raw snippets:\n\n" + raw
	}

	summary, err := a.summarizer.Summarize(ctx, ticker, snippets)
	if err != nil {
		a.logger.WithError(err).WithField("ticker", ticker).Warn("News summarization failed")
		return fmt.Sprintf("Error summarizing news: %v\n\nRaw Snippets:\n%s", err, raw)
	}

	return summary
}

// FormatSnippets renders snippets in the text form fed to the
// summarizer and shown as the raw fallback.
func FormatSnippets(snippets []ddg.Snippet) string {
	parts := make([]string, 0, len(snippets))
	for _, s := range snippets {
		parts = append(parts, fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s", s.Title, s.Link, s.Body))
	}
	return strings.Join(parts, "\n\n")
}
