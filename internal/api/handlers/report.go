package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/internal/analysis"
	"github.com/duedil-labs/duedil/internal/notes"
	"github.com/duedil-labs/duedil/internal/report"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// ReportHandler serves the downloadable PDF risk memo
type ReportHandler struct {
	analyzer *analysis.Analyzer
	store    *notes.Store
	renderer *report.Renderer
	logger   *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(analyzer *analysis.Analyzer, store *notes.Store, renderer *report.Renderer, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		analyzer: analyzer,
		store:    store,
		renderer: renderer,
		logger:   log,
	}
}

// Get runs a fresh assessment and streams the memo as a PDF
// GET /api/report/{ticker}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	result := h.analyzer.AnalyzeOne(ctx, ticker, 0)

	var meta altman.Metadata
	if result.Metadata != nil {
		meta = *result.Metadata
	} else {
		meta.Ticker = ticker
	}

	pdf, err := h.renderer.Render(report.Memo{
		Ticker:       ticker,
		Metadata:     meta,
		Score:        result.Score,
		Snapshot:     result.Snapshot,
		AnalystNotes: h.store.Get(ticker),
		NewsSummary:  result.NewsSummary,
	})
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to render risk memo")
		respondError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_risk_memo.pdf", ticker))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
