// Package models defines data structures for Feescope
package models

// FundLookupRequest is the inbound payload for POST /api/funds/lookup.
type FundLookupRequest struct {
	FundCode string `json:"fundCode"`
}

// FundLookupResponse is the single response contract for a fund lookup.
// On success FundName, MER and Source are set; on failure Error carries a
// short actionable message. MER is always a percentage number (2.35 means
// 2.35%), never a decimal fraction.
type FundLookupResponse struct {
	Success  bool    `json:"success"`
	FundCode string  `json:"fundCode"`
	FundName string  `json:"fundName,omitempty"`
	MER      float64 `json:"mer,omitempty"`
	Error    string  `json:"error,omitempty"`
	Source   string  `json:"source,omitempty"`
}

// FundRecord is a resolved fund: canonical name, MER percentage and the
// data source that produced it.
type FundRecord struct {
	Name   string
	MER    float64
	Source string
}

// TickerSearchResult is one entry from the EODHD search API.
type TickerSearchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
	Country  string `json:"Country,omitempty"`
	Currency string `json:"Currency,omitempty"`
	ISIN     string `json:"ISIN,omitempty"`
}

// Fundamentals holds the subset of EODHD fundamentals used for MER
// resolution. Expense fields arrive as decimal fractions (0.0235 = 2.35%).
type Fundamentals struct {
	General struct {
		Code string `json:"Code"`
		Name string `json:"Name"`
		Type string `json:"Type"`
	} `json:"General"`
	ETFData *ETFData `json:"ETF_Data,omitempty"`
	// MutualFund carries the fund expense fields; EODHD has shipped the net
	// expense ratio under several names over time.
	MutualFund *MutualFundData `json:"MutualFund,omitempty"`
}

// ETFData holds ETF-specific expense fields.
type ETFData struct {
	NetExpenseRatio     FlexFloat `json:"NetExpenseRatio"`
	OngoingCharge       FlexFloat `json:"Ongoing_Charge"`
	MaxAnnualMgmtCharge FlexFloat `json:"Max_Annual_Mgmt_Charge"`
}

// MutualFundData holds mutual-fund expense fields.
type MutualFundData struct {
	FundNetExpenseRatio FlexFloat `json:"Fund_NetExpenseRatio"`
	NetExpenseRatio     FlexFloat `json:"Net_Expense_Ratio"`
	ExpenseRatio        FlexFloat `json:"Expense_Ratio"`
	FundMaxRedemption   FlexFloat `json:"Fund_MaxRedemptionFee"`
}

// WebSearchResult is one scraped result from the Firecrawl search API.
type WebSearchResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// FundCodeMatch is one discovered fund code from the fund-search endpoint.
type FundCodeMatch struct {
	FundCode string `json:"fundCode"`
	FundName string `json:"fundName"`
	Source   string `json:"source"`
}

// FundSearchRequest is the inbound payload for POST /api/funds/search.
type FundSearchRequest struct {
	Query string `json:"query"`
}

// FundSearchResponse is the response for the fund-code discovery endpoint.
type FundSearchResponse struct {
	Success bool            `json:"success"`
	Query   string          `json:"query,omitempty"`
	Results []FundCodeMatch `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}
