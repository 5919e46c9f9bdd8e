// Package fees holds the fee aggregation arithmetic for the calculator.
package fees

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"

	"github.com/wealthpeek/feescope/internal/models"
)

// AnnualFee returns the yearly cost of holding amount dollars at the given
// MER percentage (2.35 means 2.35%).
func AnnualFee(amount, merPercent float64) float64 {
	return amount * merPercent / 100
}

// Summarize aggregates a set of investments. TotalInvested and TotalFees
// cover every holding; WeightedMER is amount-weighted over the holdings
// with a resolved MER, so an unresolved fund drags the average toward its
// invested weight rather than being silently dropped from the denominator.
func Summarize(investments []models.Investment) models.FeeSummary {
	var summary models.FeeSummary
	var weightedSum float64

	for _, inv := range investments {
		summary.TotalInvested += inv.Amount
		summary.TotalFees += inv.AnnualFee
		if inv.MER > 0 {
			weightedSum += inv.MER * inv.Amount
		}
	}

	if summary.TotalInvested > 0 {
		summary.WeightedMER = weightedSum / summary.TotalInvested
	}

	return summary
}

// FormatCAD renders a dollar amount as Canadian currency rounded to whole
// dollars, matching the report presentation.
func FormatCAD(amount float64) string {
	dollars := int64(math.Round(amount))
	display := money.New(dollars*100, money.CAD).Display()
	return strings.TrimSuffix(display, ".00")
}

// FormatPercent renders a percentage number at 2 decimal places.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
