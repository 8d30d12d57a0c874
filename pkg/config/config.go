package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read through this package and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string // json, console

	// External providers
	Yahoo  YahooConfig
	News   NewsConfig
	OpenAI OpenAIConfig

	// Report output
	ReportDir string

	// Watch (periodic re-scoring)
	Watch WatchConfig
}

// YahooConfig holds the market data provider configuration.
type YahooConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewsConfig holds the news search provider configuration.
type NewsConfig struct {
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

// OpenAIConfig holds the summarization provider configuration.
// The API key is optional; without it the news agent falls back to
// returning raw snippets.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// WatchConfig holds the watchlist re-scoring schedule.
type WatchConfig struct {
	Schedule string   // cron expression
	Tickers  []string // watchlist, comma separated in env
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		Yahoo: YahooConfig{
			BaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout: getEnvAsDuration("YAHOO_TIMEOUT", "30s"),
		},

		News: NewsConfig{
			BaseURL:    getEnv("NEWS_BASE_URL", "https://html.duckduckgo.com"),
			MaxResults: getEnvAsInt("NEWS_MAX_RESULTS", 5),
			Timeout:    getEnvAsDuration("NEWS_TIMEOUT", "20s"),
		},

		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", "60s"),
		},

		ReportDir: getEnv("REPORT_DIR", "reports"),

		Watch: WatchConfig{
			Schedule: getEnv("WATCH_SCHEDULE", "@daily"),
			Tickers:  getEnvAsList("WATCH_TICKERS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.News.MaxResults <= 0 {
		return fmt.Errorf("NEWS_MAX_RESULTS must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}

	parts := strings.Split(valueStr, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, strings.ToUpper(trimmed))
		}
	}
	return list
}
