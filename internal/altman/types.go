package altman

// Formula labels, surfaced verbatim in results and reports.
const (
	FormulaZ            = "Z (Manufacturing)"
	FormulaZDoublePrime = "Z'' (Non-Manufacturing)"
)

// Risk zone labels.
const (
	ZoneSafe     = "Safe Zone"
	ZoneGrey     = "Grey Zone"
	ZoneDistress = "Distress Zone"
)

// Error categories returned in place of a risk zone when scoring is not
// possible. These are user-visible strings, not errors.
const (
	ErrNoData                  = "No Data"
	ErrMissingTotalAssets      = "Missing Total Assets"
	ErrMissingWorkingCapital   = "Missing Working Capital"
	ErrMissingRetainedEarnings = "Missing Retained Earnings"
	ErrMissingEBIT             = "Missing EBIT"
	ErrMissingBVEOrLiab        = "Missing Book Value of Equity or Liabilities"
	ErrMissingMVEOrLiab        = "Missing MVE or Liabilities"
	ErrMissingSales            = "Missing Sales"
)

// nonManufacturingSectors selects the Z'' formula. Any sector outside this
// set (including unknown) falls back to the standard Z formula.
var nonManufacturingSectors = map[string]struct{}{
	"Technology":             {},
	"Consumer Cyclical":      {},
	"Consumer Defensive":     {},
	"Communication Services": {},
	"Financial Services":     {},
	"Healthcare":             {},
	"Real Estate":            {},
}

// IsNonManufacturing reports whether the sector maps to the Z'' formula.
func IsNonManufacturing(sector string) bool {
	_, ok := nonManufacturingSectors[sector]
	return ok
}

// Snapshot holds one company's normalized inputs for a single filing
// period. All values are in millions of the reporting currency. A nil
// field means the line item was not available upstream; scoring never
// substitutes zero for a missing field.
type Snapshot struct {
	TotalAssets       *float64 `json:"total_assets"`
	WorkingCapital    *float64 `json:"working_capital"`
	RetainedEarnings  *float64 `json:"retained_earnings"`
	EBIT              *float64 `json:"ebit"`
	TotalLiabilities  *float64 `json:"total_liabilities"`
	MarketValueEquity *float64 `json:"market_value_equity"`
	BookValueEquity   *float64 `json:"book_value_equity"`
	TotalRevenue      *float64 `json:"total_revenue"`
}

// Metadata describes the company and filing behind a Snapshot.
// Immutable once assembled.
type Metadata struct {
	Ticker           string  `json:"ticker"`
	Sector           string  `json:"sector"`
	Industry         string  `json:"industry"`
	FilingDate       *string `json:"filing_date"`
	IsStale          bool    `json:"is_stale"`
	FreshnessWarning *string `json:"freshness_warning,omitempty"`
	Currency         string  `json:"currency"`
	Unit             string  `json:"unit"`
}

// Result is the outcome of one scoring call. When scoring fails,
// ZScore is nil, FormulaUsed is empty and RiskCategory carries the
// error category instead of a zone label.
type Result struct {
	ZScore       *float64           `json:"z_score"`
	RiskCategory string             `json:"risk_category"`
	FormulaUsed  string             `json:"formula_used,omitempty"`
	Factors      map[string]float64 `json:"factors,omitempty"`
}

// Scored reports whether the result carries a numeric score.
func (r Result) Scored() bool {
	return r.ZScore != nil
}
