// Package yahoo implements the market data provider against Yahoo
// Finance's public quoteSummary API (v10). No API key is required.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/duedil-labs/duedil/internal/assemble"
	"github.com/duedil-labs/duedil/pkg/httputil"
	"github.com/duedil-labs/duedil/pkg/logger"
)

const quoteSummaryModules = "balanceSheetHistory,incomeStatementHistory,assetProfile,price"

// Yahoo rejects requests carrying Go's default agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

// lineItemKeys maps Yahoo's statement keys to the canonical line-item
// names the assembler's preference chains operate on.
var lineItemKeys = map[string]string{
	"totalAssets":                         assemble.LineTotalAssets,
	"totalCurrentAssets":                  assemble.LineTotalCurrentAssets,
	"totalCurrentLiabilities":             assemble.LineTotalCurrentLiabilities,
	"workingCapital":                      assemble.LineWorkingCapital,
	"retainedEarnings":                    assemble.LineRetainedEarnings,
	"totalLiab":                           assemble.LineTotalLiabilities,
	"totalLiabilitiesNetMinorityInterest": assemble.LineTotalLiabilitiesNetMI,
	"totalStockholderEquity":              assemble.LineStockholdersEquity,
	"totalEquityGrossMinorityInterest":    assemble.LineTotalEquityGrossMI,
	"ebit":                                assemble.LineEBIT,
	"totalRevenue":                        assemble.LineTotalRevenue,
}

// Client handles communication with Yahoo Finance.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient.WithUserAgent(userAgent),
		logger:     log,
		baseURL:    baseURL,
	}
}

// Fetch retrieves annual balance sheet, income statement and company
// profile data for a ticker. Implements assemble.MarketDataProvider.
func (c *Client) Fetch(ctx context.Context, ticker string) (*assemble.CompanyData, error) {
	endpoint := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), quoteSummaryModules,
	)

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo quoteSummary %s: unexpected status code %d", ticker, resp.StatusCode)
	}

	var parsed quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: decode response: %w", ticker, err)
	}

	if parsed.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo API error for %s: %s", ticker, parsed.QuoteSummary.Error.Description)
	}
	if len(parsed.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quoteSummary data for %s", ticker)
	}

	r := parsed.QuoteSummary.Result[0]

	data := &assemble.CompanyData{}

	if r.BalanceSheetHistory != nil {
		data.BalanceSheet = convertStatements(r.BalanceSheetHistory.Statements)
	}
	if r.IncomeStatementHistory != nil {
		data.IncomeStatement = convertStatements(r.IncomeStatementHistory.Statements)
	}
	if r.AssetProfile != nil {
		data.Info.Sector = r.AssetProfile.Sector
		data.Info.Industry = r.AssetProfile.Industry
	}
	if r.Price != nil {
		data.Info.Currency = r.Price.Currency
		data.Info.MarketCap = r.Price.MarketCap.Raw
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":          ticker,
		"balance_periods": len(data.BalanceSheet),
		"income_periods":  len(data.IncomeStatement),
		"sector":          data.Info.Sector,
	}).Debug("Fetched company data")

	return data, nil
}

// convertStatements maps Yahoo statements onto canonical line items,
// preserving order (Yahoo returns most recent first).
func convertStatements(raw []statement) []assemble.Statement {
	out := make([]assemble.Statement, 0, len(raw))
	for _, stmt := range raw {
		converted := assemble.Statement{
			Items: make(map[string]float64, len(stmt)),
		}

		if end, ok := stmt["endDate"]; ok {
			converted.EndDate = end.Fmt
		}

		for key, canonical := range lineItemKeys {
			if v, ok := stmt[key]; ok && v.Raw != nil {
				converted.Items[canonical] = *v.Raw
			}
		}

		out = append(out, converted)
	}
	return out
}
