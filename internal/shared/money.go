package shared

import "github.com/shopspring/decimal"

func init() {
	// Prices and totals travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Cents rounds an amount to two decimal places for reporting.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
