package commands

import (
	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/internal/assemble"
	"github.com/duedil-labs/duedil/internal/external/ddg"
	"github.com/duedil-labs/duedil/internal/external/openai"
	"github.com/duedil-labs/duedil/internal/external/yahoo"
	"github.com/duedil-labs/duedil/internal/news"
	"github.com/duedil-labs/duedil/pkg/config"
	"github.com/duedil-labs/duedil/pkg/httputil"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// buildAnalyzer wires the external clients, the assembler, the scoring
// engine and the news agent into one analyzer. The OpenAI summarizer is
// only attached when an API key is configured.
func buildAnalyzer(cfg *config.Config, log *logger.Logger) *analysis.Analyzer {
	yahooClient := yahoo.NewClient(
		httputil.NewWithTimeout(log, cfg.Yahoo.Timeout).WithRateLimit(2),
		log,
		cfg.Yahoo.BaseURL,
	)

	ddgClient := ddg.NewClient(
		httputil.NewWithTimeout(log, cfg.News.Timeout),
		log,
		cfg.News.BaseURL,
		cfg.News.MaxResults,
	)

	var summarizer news.Summarizer
	if cfg.OpenAI.APIKey != "" {
		openaiClient := openai.NewClient(
			httputil.NewWithTimeout(log, cfg.OpenAI.Timeout),
			log,
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.BaseURL,
		)
		summarizer = news.NewOpenAISummarizer(openaiClient)
	}

	agent := news.NewAgent(ddgClient, summarizer, log)
	assembler := assemble.New(yahooClient, log)

	return analysis.New(assembler, altman.NewEngine(), agent, log)
}
