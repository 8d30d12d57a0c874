// Package report renders the one-page credit risk memo PDF.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/duedil-labs/duedil/internal/altman"
)

// millionsPrinter groups thousands in metric values (1,234.56).
var millionsPrinter = message.NewPrinter(language.English)

// newsSummaryLimit caps the news section; anything longer is cut with
// an ellipsis so the memo stays near one page.
const newsSummaryLimit = 500

// Memo holds everything that goes into one rendered risk memo.
type Memo struct {
	Ticker       string
	Metadata     altman.Metadata
	Score        altman.Result
	Snapshot     *altman.Snapshot
	AnalystNotes string
	NewsSummary  string
}

// Renderer produces PDF memos. now is injectable for reproducible
// output in tests.
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a memo renderer.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// WithClock overrides the generation timestamp. Test hook.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render produces the PDF bytes for a memo.
func (r *Renderer) Render(memo Memo) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("CREDIT RISK MEMO - %s", memo.Ticker), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", r.now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// Company info
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Company Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Sector: %s", orNA(memo.Metadata.Sector)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Industry: %s", orNA(memo.Metadata.Industry)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Filing Date: %s", orNAPtr(memo.Metadata.FilingDate)), "", 1, "L", false, 0, "")
	if memo.Metadata.IsStale {
		pdf.SetTextColor(255, 0, 0)
		pdf.CellFormat(0, 6, "WARNING: Data may be stale (> 18 months old)", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(5)

	// Risk assessment
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Credit Risk Assessment", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Formula Used: %s", orNA(memo.Score.FormulaUsed)), "", 1, "L", false, 0, "")

	scoreLine := "Z-Score: N/A"
	if memo.Score.ZScore != nil {
		scoreLine = fmt.Sprintf("Z-Score: %.4f", *memo.Score.ZScore)
	}
	pdf.CellFormat(0, 6, scoreLine, "", 1, "L", false, 0, "")

	red, green, blue := categoryColor(memo.Score.RiskCategory)
	pdf.SetTextColor(red, green, blue)
	pdf.CellFormat(0, 6, fmt.Sprintf("Risk Category: %s", memo.Score.RiskCategory), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(5)

	// Key metrics
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Key Financial Metrics (in Millions)", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, m := range metricRows(memo.Snapshot) {
		line := millionsPrinter.Sprintf("  %s: %.2fM", m.label, m.value)
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// News summary
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Risk Intelligence Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, truncate(memo.NewsSummary, newsSummaryLimit), "", "L", false)
	pdf.Ln(5)

	// Analyst notes
	if memo.AnalystNotes != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Analyst Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, memo.AnalystNotes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render memo PDF: %w", err)
	}
	return buf.Bytes(), nil
}

type metricRow struct {
	label string
	value float64
}

// metricRows flattens the snapshot into display order, skipping absent
// fields the way the dashboard's metrics table does.
func metricRows(snap *altman.Snapshot) []metricRow {
	if snap == nil {
		return nil
	}

	fields := []struct {
		label string
		value *float64
	}{
		{"Total Assets", snap.TotalAssets},
		{"Working Capital", snap.WorkingCapital},
		{"Retained Earnings", snap.RetainedEarnings},
		{"EBIT", snap.EBIT},
		{"Total Liabilities", snap.TotalLiabilities},
		{"Market Value of Equity", snap.MarketValueEquity},
		{"Book Value of Equity", snap.BookValueEquity},
		{"Total Revenue", snap.TotalRevenue},
	}

	rows := make([]metricRow, 0, len(fields))
	for _, f := range fields {
		if f.value != nil {
			rows = append(rows, metricRow{label: f.label, value: *f.value})
		}
	}
	return rows
}

// categoryColor maps a risk category to its memo color: green for
// safe, orange for grey, red for everything else.
func categoryColor(category string) (r, g, b int) {
	switch category {
	case altman.ZoneSafe:
		return 0, 128, 0
	case altman.ZoneGrey:
		return 255, 165, 0
	default:
		return 255, 0, 0
	}
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNAPtr(s *string) string {
	if s == nil {
		return "N/A"
	}
	return orNA(*s)
}
