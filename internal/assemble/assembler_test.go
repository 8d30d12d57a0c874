package assemble

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duedil-labs/duedil/pkg/logger"
)

// fakeProvider returns canned data or a canned error.
type fakeProvider struct {
	data *CompanyData
	err  error
}

func (p *fakeProvider) Fetch(_ context.Context, _ string) (*CompanyData, error) {
	return p.data, p.err
}

func fullCompanyData() *CompanyData {
	return &CompanyData{
		BalanceSheet: []Statement{
			{
				EndDate: "2026-03-31",
				Items: map[string]float64{
					LineTotalAssets:             100e6,
					LineTotalCurrentAssets:      60e6,
					LineTotalCurrentLiabilities: 40e6,
					LineRetainedEarnings:        30e6,
					LineTotalLiabilitiesNetMI:   45e6,
					LineStockholdersEquity:      55e6,
				},
			},
			{
				EndDate: "2025-03-31",
				Items:   map[string]float64{LineTotalAssets: 90e6},
			},
		},
		IncomeStatement: []Statement{
			{
				EndDate: "2026-03-31",
				Items: map[string]float64{
					LineEBIT:         15e6,
					LineTotalRevenue: 150e6,
				},
			},
		},
		Info: CompanyInfo{
			Sector:    "Industrials",
			Industry:  "Farm & Heavy Construction Machinery",
			Currency:  "USD",
			MarketCap: f(200e6),
		},
	}
}

func newTestAssembler(p MarketDataProvider) *Assembler {
	return New(p, logger.NewNop()).WithClock(func() time.Time { return testNow })
}

func TestAssemble_FullSnapshot(t *testing.T) {
	a := newTestAssembler(&fakeProvider{data: fullCompanyData()})

	snap, meta := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, snap)
	require.NotNil(t, meta)

	// Values normalized to millions
	require.NotNil(t, snap.TotalAssets)
	assert.InDelta(t, 100, *snap.TotalAssets, 1e-9)
	require.NotNil(t, snap.WorkingCapital)
	assert.InDelta(t, 20, *snap.WorkingCapital, 1e-9) // 60M - 40M
	require.NotNil(t, snap.RetainedEarnings)
	assert.InDelta(t, 30, *snap.RetainedEarnings, 1e-9)
	require.NotNil(t, snap.EBIT)
	assert.InDelta(t, 15, *snap.EBIT, 1e-9)
	require.NotNil(t, snap.TotalLiabilities)
	assert.InDelta(t, 45, *snap.TotalLiabilities, 1e-9)
	require.NotNil(t, snap.MarketValueEquity)
	assert.InDelta(t, 200, *snap.MarketValueEquity, 1e-9)
	require.NotNil(t, snap.BookValueEquity)
	assert.InDelta(t, 55, *snap.BookValueEquity, 1e-9)
	require.NotNil(t, snap.TotalRevenue)
	assert.InDelta(t, 150, *snap.TotalRevenue, 1e-9)

	// Metadata
	assert.Equal(t, "CAT", meta.Ticker)
	assert.Equal(t, "Industrials", meta.Sector)
	assert.Equal(t, "USD", meta.Currency)
	assert.Equal(t, "Millions", meta.Unit)
	assert.False(t, meta.IsStale)
	require.NotNil(t, meta.FilingDate)
	assert.Equal(t, "2026-03-31", *meta.FilingDate)
}

func TestAssemble_WorkingCapitalFallback(t *testing.T) {
	data := fullCompanyData()
	delete(data.BalanceSheet[0].Items, LineTotalCurrentAssets)
	data.BalanceSheet[0].Items[LineWorkingCapital] = 18e6

	a := newTestAssembler(&fakeProvider{data: data})
	snap, _ := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, snap)
	require.NotNil(t, snap.WorkingCapital)
	assert.InDelta(t, 18, *snap.WorkingCapital, 1e-9)
}

func TestAssemble_WorkingCapitalAbsentEntirely(t *testing.T) {
	data := fullCompanyData()
	delete(data.BalanceSheet[0].Items, LineTotalCurrentLiabilities)

	a := newTestAssembler(&fakeProvider{data: data})
	snap, _ := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, snap)
	assert.Nil(t, snap.WorkingCapital)
}

func TestAssemble_TotalLiabilitiesFallback(t *testing.T) {
	data := fullCompanyData()
	delete(data.BalanceSheet[0].Items, LineTotalLiabilitiesNetMI)
	data.BalanceSheet[0].Items[LineTotalLiabilities] = 48e6

	a := newTestAssembler(&fakeProvider{data: data})
	snap, _ := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, snap)
	require.NotNil(t, snap.TotalLiabilities)
	assert.InDelta(t, 48, *snap.TotalLiabilities, 1e-9)
}

func TestAssemble_BookValueEquityFallback(t *testing.T) {
	data := fullCompanyData()
	delete(data.BalanceSheet[0].Items, LineStockholdersEquity)
	data.BalanceSheet[0].Items[LineTotalEquityGrossMI] = 52e6

	a := newTestAssembler(&fakeProvider{data: data})
	snap, _ := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, snap)
	require.NotNil(t, snap.BookValueEquity)
	assert.InDelta(t, 52, *snap.BookValueEquity, 1e-9)
}

func TestAssemble_DefaultsForMissingProfile(t *testing.T) {
	data := fullCompanyData()
	data.Info.Sector = ""
	data.Info.Industry = ""
	data.Info.Currency = ""

	a := newTestAssembler(&fakeProvider{data: data})
	_, meta := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, meta)
	assert.Equal(t, "Unknown", meta.Sector)
	assert.Equal(t, "Unknown", meta.Industry)
	assert.Equal(t, "USD", meta.Currency)
}

func TestAssemble_StaleFiling(t *testing.T) {
	data := fullCompanyData()
	data.BalanceSheet[0].EndDate = "2023-12-31"

	a := newTestAssembler(&fakeProvider{data: data})
	_, meta := a.Assemble(context.Background(), "CAT")

	require.NotNil(t, meta)
	assert.True(t, meta.IsStale)
	require.NotNil(t, meta.FreshnessWarning)
	assert.Contains(t, *meta.FreshnessWarning, "STALE DATA")
}

func TestAssemble_Unavailable(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{"fetch error", &fakeProvider{err: errors.New("connection refused")}},
		{"nil data", &fakeProvider{}},
		{"empty balance sheet", &fakeProvider{data: &CompanyData{
			IncomeStatement: []Statement{{EndDate: "2026-03-31"}},
		}}},
		{"empty income statement", &fakeProvider{data: &CompanyData{
			BalanceSheet: []Statement{{EndDate: "2026-03-31"}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAssembler(tt.provider)
			snap, meta := a.Assemble(context.Background(), "CAT")
			assert.Nil(t, snap)
			assert.Nil(t, meta)
		})
	}
}

func TestStatement_Get(t *testing.T) {
	s := Statement{Items: map[string]float64{LineEBIT: 10}}

	got := s.Get(LineEBIT)
	require.NotNil(t, got)
	assert.Equal(t, 10.0, *got)

	assert.Nil(t, s.Get(LineTotalRevenue))

	// Returned pointer is a copy, not a map reference
	*got = 99
	assert.Equal(t, 10.0, s.Items[LineEBIT])
}
