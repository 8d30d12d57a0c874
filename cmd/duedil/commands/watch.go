package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/duedil-labs/duedil/internal/scheduler"
	"github.com/duedil-labs/duedil/pkg/config"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically re-score the configured watchlist",
	Long: `Runs the watchlist re-scoring job on a cron schedule and logs
risk category transitions.

Configuration:
  WATCH_TICKERS   comma separated watchlist (e.g. AAPL,F,GE)
  WATCH_SCHEDULE  cron expression with seconds, default @daily

Example:
  WATCH_TICKERS=AAPL,F go run ./cmd/duedil watch`,
	RunE: runWatch,
}

var watchNow bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchNow, "now", false, "run the watch job once immediately on startup")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(cfg.Watch.Tickers) == 0 {
		return fmt.Errorf("WATCH_TICKERS is empty")
	}

	log := logger.New(cfg)
	analyzer := buildAnalyzer(cfg, log)

	job := scheduler.NewWatchJob(analyzer, cfg.Watch.Tickers, cfg.Watch.Schedule, log)

	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add watch job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if watchNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("Watching %v on schedule %q\n", cfg.Watch.Tickers, cfg.Watch.Schedule)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
