package lookup

import (
	"math"

	"github.com/wealthpeek/feescope/internal/models"
)

// merField pairs an expense field with its display source label. Fields are
// checked in order; the first positive value wins. Upstream values are
// decimal fractions (0.0235 = 2.35%), so the winner is scaled to a
// percentage and rounded to 2 places. Zeros are treated as absent because
// EODHD ships placeholder zeros where the figure is unknown.
type merField struct {
	value  float64
	source string
}

// extractMER pulls an MER percentage out of a fundamentals payload.
// Returns (0, "", false) when no field carries a usable value.
func extractMER(data *models.Fundamentals) (float64, string, bool) {
	var fields []merField

	if data.ETFData != nil {
		fields = append(fields,
			merField{float64(data.ETFData.NetExpenseRatio), "EODHD ETF Data"},
			merField{float64(data.ETFData.OngoingCharge), "EODHD ETF Ongoing Charge"},
			merField{float64(data.ETFData.MaxAnnualMgmtCharge), "EODHD ETF Mgmt Charge"},
		)
	}
	if data.MutualFund != nil {
		fields = append(fields,
			merField{float64(data.MutualFund.FundNetExpenseRatio), "EODHD Mutual Fund Data"},
			merField{float64(data.MutualFund.NetExpenseRatio), "EODHD Mutual Fund Data"},
			merField{float64(data.MutualFund.ExpenseRatio), "EODHD Mutual Fund Data"},
		)
	}

	for _, f := range fields {
		if f.value > 0 {
			return round2(f.value * 100), f.source, true
		}
	}
	return 0, "", false
}

// fundamentalsRecord combines the extracted MER with the fund name,
// falling back to the queried ticker when the upstream name is absent.
func fundamentalsRecord(ticker string, data *models.Fundamentals) *models.FundRecord {
	mer, source, ok := extractMER(data)
	if !ok {
		return nil
	}

	name := data.General.Name
	if name == "" {
		name = ticker
	}

	return &models.FundRecord{
		Name:   name,
		MER:    mer,
		Source: source,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
