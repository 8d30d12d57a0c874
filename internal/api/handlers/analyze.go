// Package handlers contains the HTTP handlers for the duedil API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// AnalyzeHandler handles Z-Score analysis endpoints
type AnalyzeHandler struct {
	analyzer *analysis.Analyzer
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(analyzer *analysis.Analyzer, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   log,
	}
}

// AnalyzeRequest represents a batch analysis request
type AnalyzeRequest struct {
	Tickers  []string `json:"tickers"`
	ShockPct float64  `json:"shock_pct,omitempty"`
}

// AnalyzeBatch assesses a batch of tickers
// POST /api/analyze
func (h *AnalyzeHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tickers := make([]string, 0, len(req.Tickers))
	for _, t := range req.Tickers {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		respondError(w, http.StatusBadRequest, "At least one ticker is required")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tickers": tickers,
		"shock":   req.ShockPct,
	}).Info("Batch analysis triggered")

	reports := h.analyzer.AnalyzeAll(ctx, tickers, req.ShockPct)
	respondJSON(w, http.StatusOK, reports)
}

// AnalyzeTicker assesses a single ticker, optionally under a revenue shock
// GET /api/analyze/{ticker}?shock=25
func (h *AnalyzeHandler) AnalyzeTicker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := mux.Vars(r)["ticker"]

	var shockPct float64
	if raw := r.URL.Query().Get("shock"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'shock' parameter (expected a number)")
			return
		}
		shockPct = parsed
	}

	report := h.analyzer.AnalyzeOne(ctx, ticker, shockPct)
	respondJSON(w, http.StatusOK, report)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
