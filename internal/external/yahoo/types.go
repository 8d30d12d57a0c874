package yahoo

// quoteSummary v10 response envelope.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteSummaryResult struct {
	BalanceSheetHistory    *balanceSheetContainer    `json:"balanceSheetHistory"`
	IncomeStatementHistory *incomeStatementContainer `json:"incomeStatementHistory"`
	AssetProfile           *assetProfile             `json:"assetProfile"`
	Price                  *priceModule              `json:"price"`
}

type balanceSheetContainer struct {
	Statements []statement `json:"balanceSheetStatements"`
}

type incomeStatementContainer struct {
	Statements []statement `json:"incomeStatementHistory"`
}

// statement is one reporting period. Yahoo wraps every numeric line
// item in a raw/fmt value object; endDate rides along in the same map.
type statement map[string]finValue

type finValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

type assetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type priceModule struct {
	Currency  string   `json:"currency"`
	MarketCap finValue `json:"marketCap"`
}
