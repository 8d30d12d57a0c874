package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duedil-labs/duedil/internal/api"
	"github.com/duedil-labs/duedil/internal/api/handlers"
	"github.com/duedil-labs/duedil/internal/notes"
	"github.com/duedil-labs/duedil/internal/report"
	"github.com/duedil-labs/duedil/pkg/config"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                - Health check
  POST /api/analyze           - Batch risk assessment
  GET  /api/analyze/{ticker}  - Single ticker assessment (?shock=N)
  GET  /api/notes/{ticker}    - Read analyst notes
  PUT  /api/notes/{ticker}    - Store analyst notes
  GET  /api/report/{ticker}   - Download the PDF risk memo

Example:
  go run ./cmd/duedil api
  go run ./cmd/duedil api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	analyzer := buildAnalyzer(cfg, log)
	store := notes.NewStore()
	renderer := report.NewRenderer()

	router := api.NewRouter(
		handlers.NewAnalyzeHandler(analyzer, log),
		handlers.NewNotesHandler(store, log),
		handlers.NewReportHandler(analyzer, store, renderer, log),
		log,
	)

	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
