package models

// Investment is a single fund holding in a fee report. MER and AnnualFee
// follow the percentage/CAD conventions of the lookup core.
type Investment struct {
	FundCode    string  `json:"fundCode"`
	FundName    string  `json:"fundName"`
	Amount      float64 `json:"amount"`
	MER         float64 `json:"mer"`
	AnnualFee   float64 `json:"annualFee"`
	AccountType string  `json:"accountType,omitempty"`
}

// ServiceItem is one advisory service the client does or does not receive.
type ServiceItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// ReportEmailRequest is the inbound payload for POST /api/report/email.
type ReportEmailRequest struct {
	Email           string        `json:"email"`
	FirstName       string        `json:"firstName,omitempty"`
	Investments     []Investment  `json:"investments"`
	Services        []ServiceItem `json:"services"`
	MeetingsPerYear int           `json:"meetingsPerYear"`
	MeetingLabel    string        `json:"meetingLabel"`
	TotalInvested   float64       `json:"totalInvested"`
	TotalFees       float64       `json:"totalFees"`
	WeightedMER     float64       `json:"weightedMER"`
}

// ReportEmailResponse is returned by the report email endpoint.
type ReportEmailResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FeeSummary aggregates a set of investments. WeightedMER is amount-weighted
// across holdings with a resolved MER.
type FeeSummary struct {
	TotalInvested float64 `json:"totalInvested"`
	TotalFees     float64 `json:"totalFees"`
	WeightedMER   float64 `json:"weightedMER"`
}
