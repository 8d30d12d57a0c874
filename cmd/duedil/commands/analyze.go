package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/internal/report"
	"github.com/duedil-labs/duedil/pkg/config"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze TICKER [TICKER...]",
	Short: "Run a credit risk assessment for one or more tickers",
	Long: `Fetches the latest annual financial statements, computes the
Altman Z-Score with the sector-appropriate formula and summarizes
risk-relevant news.

Example:
  go run ./cmd/duedil analyze AAPL MSFT F
  go run ./cmd/duedil analyze F --shock 25
  go run ./cmd/duedil analyze AAPL --pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeShock float64
	analyzePDF   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&analyzeShock, "shock", 0, "revenue shock percentage (0-100)")
	analyzeCmd.Flags().BoolVar(&analyzePDF, "pdf", false, "write a PDF risk memo per ticker")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	analyzer := buildAnalyzer(cfg, log)

	reports := analyzer.AnalyzeAll(context.Background(), args, analyzeShock)

	tickers := make([]string, 0, len(reports))
	for ticker := range reports {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		printReport(reports[ticker])
	}

	if analyzePDF {
		if err := writeMemos(cfg, reports); err != nil {
			return err
		}
	}

	return nil
}

func printReport(r *analysis.TickerReport) {
	fmt.Printf("=== %s ===\n", r.Ticker)

	if r.Metadata != nil {
		fmt.Printf("Sector:   %s / %s\n", r.Metadata.Sector, r.Metadata.Industry)
		if r.Metadata.FilingDate != nil {
			fmt.Printf("Filing:   %s\n", *r.Metadata.FilingDate)
		}
		if r.Metadata.FreshnessWarning != nil {
			fmt.Printf("Warning:  %s\n", *r.Metadata.FreshnessWarning)
		}
	}

	if r.Score.Scored() {
		fmt.Printf("Formula:  %s\n", r.Score.FormulaUsed)
		fmt.Printf("Z-Score:  %.4f\n", *r.Score.ZScore)
	}
	fmt.Printf("Category: %s\n", r.Score.RiskCategory)

	if r.NewsSummary != "" {
		fmt.Printf("\nNews:\n%s\n", r.NewsSummary)
	}
	fmt.Println()
}

func writeMemos(cfg *config.Config, reports map[string]*analysis.TickerReport) error {
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	renderer := report.NewRenderer()

	for ticker, r := range reports {
		var meta altman.Metadata
		if r.Metadata != nil {
			meta = *r.Metadata
		} else {
			meta.Ticker = ticker
		}

		pdf, err := renderer.Render(report.Memo{
			Ticker:      ticker,
			Metadata:    meta,
			Score:       r.Score,
			Snapshot:    r.Snapshot,
			NewsSummary: r.NewsSummary,
		})
		if err != nil {
			return fmt.Errorf("render memo for %s: %w", ticker, err)
		}

		path := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s_risk_memo.pdf", ticker))
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("write memo for %s: %w", ticker, err)
		}

		fmt.Printf("Wrote %s\n", path)
	}

	return nil
}
