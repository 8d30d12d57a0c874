package assemble

import (
	"context"
	"time"

	"github.com/duedil-labs/duedil/internal/altman"
	"github.com/duedil-labs/duedil/pkg/logger"
)

// Canonical line-item names used by the preference chains below.
// Providers map their own keys onto these.
const (
	LineTotalAssets             = "Total Assets"
	LineTotalCurrentAssets      = "Total Current Assets"
	LineTotalCurrentLiabilities = "Total Current Liabilities"
	LineWorkingCapital          = "Working Capital"
	LineRetainedEarnings        = "Retained Earnings"
	LineEBIT                    = "EBIT"
	LineTotalLiabilitiesNetMI   = "Total Liabilities Net Minority Interest"
	LineTotalLiabilities        = "Total Liabilities"
	LineStockholdersEquity      = "Stockholders Equity"
	LineTotalEquityGrossMI      = "Total Equity Gross Minority Interest"
	LineTotalRevenue            = "Total Revenue"
)

// Statement is one reporting period's line items, keyed by canonical
// name. EndDate is the raw reporting date string as the provider
// returned it.
type Statement struct {
	EndDate string
	Items   map[string]float64
}

// Get returns a line item by name, or nil when absent.
func (s Statement) Get(name string) *float64 {
	if v, ok := s.Items[name]; ok {
		value := v
		return &value
	}
	return nil
}

// CompanyInfo is the provider's company profile record.
type CompanyInfo struct {
	Sector    string
	Industry  string
	Currency  string
	MarketCap *float64
}

// CompanyData is everything the assembler needs for one ticker.
// Statements are ordered most recent first.
type CompanyData struct {
	BalanceSheet    []Statement
	IncomeStatement []Statement
	Info            CompanyInfo
}

// MarketDataProvider retrieves raw financial statements for a ticker.
// Implemented by internal/external/yahoo; faked in tests.
type MarketDataProvider interface {
	Fetch(ctx context.Context, ticker string) (*CompanyData, error)
}

// Assembler builds normalized scoring inputs from provider data.
type Assembler struct {
	provider MarketDataProvider
	logger   *logger.Logger
	now      func() time.Time
}

// New creates a new assembler.
func New(provider MarketDataProvider, log *logger.Logger) *Assembler {
	return &Assembler{
		provider: provider,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the freshness clock. Test hook.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Assemble fetches statements for a ticker, selects the most recent
// reporting period, normalizes every required line item to millions and
// runs the freshness check. It returns (nil, nil) when the provider has
// no balance sheet or income statement for the ticker, or when the
// fetch itself fails; fetch errors are logged, never propagated.
func (a *Assembler) Assemble(ctx context.Context, ticker string) (*altman.Snapshot, *altman.Metadata) {
	data, err := a.provider.Fetch(ctx, ticker)
	if err != nil {
		a.logger.WithError(err).WithField("ticker", ticker).Error("Failed to fetch financial data")
		return nil, nil
	}

	if data == nil || len(data.BalanceSheet) == 0 || len(data.IncomeStatement) == 0 {
		a.logger.WithField("ticker", ticker).Warn("No financial statements available")
		return nil, nil
	}

	// Most recent reporting period
	bs := data.BalanceSheet[0]
	fin := data.IncomeStatement[0]

	freshness := CheckFreshnessRaw(bs.EndDate, a.now())

	sector := data.Info.Sector
	if sector == "" {
		sector = "Unknown"
	}
	industry := data.Info.Industry
	if industry == "" {
		industry = "Unknown"
	}
	currency := data.Info.Currency
	if currency == "" {
		currency = "USD"
	}

	meta := &altman.Metadata{
		Ticker:           ticker,
		Sector:           sector,
		Industry:         industry,
		FilingDate:       freshness.FilingDate,
		IsStale:          freshness.IsStale,
		FreshnessWarning: freshness.Warning,
		Currency:         currency,
		Unit:             "Millions",
	}

	snap := &altman.Snapshot{
		TotalAssets:       Normalize(bs.Get(LineTotalAssets), ScaleMillions),
		WorkingCapital:    Normalize(workingCapital(bs), ScaleMillions),
		RetainedEarnings:  Normalize(bs.Get(LineRetainedEarnings), ScaleMillions),
		EBIT:              Normalize(fin.Get(LineEBIT), ScaleMillions),
		TotalLiabilities:  Normalize(totalLiabilities(bs), ScaleMillions),
		MarketValueEquity: Normalize(data.Info.MarketCap, ScaleMillions),
		BookValueEquity:   Normalize(bookValueEquity(bs), ScaleMillions),
		TotalRevenue:      Normalize(fin.Get(LineTotalRevenue), ScaleMillions),
	}

	return snap, meta
}

// workingCapital prefers (Total Current Assets - Total Current
// Liabilities) and falls back to the directly reported line when either
// operand is absent.
func workingCapital(bs Statement) *float64 {
	tca := bs.Get(LineTotalCurrentAssets)
	tcl := bs.Get(LineTotalCurrentLiabilities)
	if tca != nil && tcl != nil {
		wc := *tca - *tcl
		return &wc
	}
	return bs.Get(LineWorkingCapital)
}

// totalLiabilities prefers the net-of-minority-interest variant.
func totalLiabilities(bs Statement) *float64 {
	if v := bs.Get(LineTotalLiabilitiesNetMI); v != nil {
		return v
	}
	return bs.Get(LineTotalLiabilities)
}

// bookValueEquity prefers stockholders equity over the gross variant.
func bookValueEquity(bs Statement) *float64 {
	if v := bs.Get(LineStockholdersEquity); v != nil {
		return v
	}
	return bs.Get(LineTotalEquityGrossMI)
}
