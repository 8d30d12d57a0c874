package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/duedil-labs/duedil/internal/notes"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// NotesHandler handles analyst note endpoints
type NotesHandler struct {
	store  *notes.Store
	logger *logger.Logger
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(store *notes.Store, log *logger.Logger) *NotesHandler {
	return &NotesHandler{
		store:  store,
		logger: log,
	}
}

// NoteResponse represents a stored note
type NoteResponse struct {
	Ticker string `json:"ticker"`
	Notes  string `json:"notes"`
}

// NoteRequest represents a note update
type NoteRequest struct {
	Notes string `json:"notes"`
}

// Get returns the analyst notes for a ticker
// GET /api/notes/{ticker}
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	respondJSON(w, http.StatusOK, NoteResponse{
		Ticker: ticker,
		Notes:  h.store.Get(ticker),
	})
}

// Put stores the analyst notes for a ticker; an empty note deletes
// PUT /api/notes/{ticker}
func (h *NotesHandler) Put(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.store.Set(ticker, req.Notes)
	h.logger.WithField("ticker", ticker).Debug("Analyst notes updated")

	respondJSON(w, http.StatusOK, NoteResponse{
		Ticker: ticker,
		Notes:  h.store.Get(ticker),
	})
}
