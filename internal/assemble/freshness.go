package assemble

import (
	"fmt"
	"time"
)

// staleAfter is the filing-age threshold. 18 months approximated as
// fixed 30-day months (540 days); calendar-month arithmetic would move
// the classification boundary.
const staleAfter = 18 * 30 * 24 * time.Hour

// Freshness classifies how recent the most recent filing is.
type Freshness struct {
	IsStale    bool
	FilingDate *string // formatted 2006-01-02, nil when unknown
	Warning    *string // human-readable, nil when data is fresh
}

// CheckFreshness classifies a filing date against the staleness
// threshold. A nil filing date is treated as stale with a "no data"
// warning. now is injected so callers and tests control the clock.
func CheckFreshness(filingDate *time.Time, now time.Time) Freshness {
	if filingDate == nil {
		warning := "No balance sheet data available."
		return Freshness{IsStale: true, Warning: &warning}
	}

	dateStr := filingDate.Format("2006-01-02")
	threshold := now.Add(-staleAfter)

	if filingDate.Before(threshold) {
		warning := fmt.Sprintf(
			"STALE DATA: Most recent filing is from %s (> 18 months old). Credit risk assessment may be unreliable.",
			dateStr,
		)
		return Freshness{IsStale: true, FilingDate: &dateStr, Warning: &warning}
	}

	return Freshness{IsStale: false, FilingDate: &dateStr}
}

// CheckFreshnessRaw parses a raw filing-date string before classifying
// it. An empty string means no filing data; an unparseable one degrades
// to stale with a parse-failure warning rather than an error.
func CheckFreshnessRaw(raw string, now time.Time) Freshness {
	if raw == "" {
		return CheckFreshness(nil, now)
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		warning := fmt.Sprintf("Could not determine data freshness: %v", err)
		return Freshness{IsStale: true, Warning: &warning}
	}

	return CheckFreshness(&parsed, now)
}
