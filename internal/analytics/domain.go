package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductsLimit caps the top sellers reported in a summary.
const TopProductsLimit = 5

// PeriodTotals aggregates revenue and sale count over a period.
type PeriodTotals struct {
	Total decimal.Decimal `db:"total" json:"total"`
	Count int             `db:"count" json:"count"`
}

// TopProduct is a best seller ranked by units sold.
type TopProduct struct {
	ProductID int64           `db:"product_id" json:"product_id"`
	Name      string          `db:"name" json:"name"`
	TotalSold int             `db:"total_sold" json:"total_sold"`
	Revenue   decimal.Decimal `db:"revenue" json:"revenue"`
}

// SalesSummary is the dashboard view of today, this month and the month's top sellers.
type SalesSummary struct {
	Today       PeriodTotals `json:"today"`
	Month       PeriodTotals `json:"month"`
	TopProducts []TopProduct `json:"top_products"`
}

// Window is the half-open interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// DayWindow returns the calendar day containing t, in t's location.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{From: start, To: start.AddDate(0, 0, 1)}
}

// MonthWindow returns the calendar month containing t, in t's location.
func MonthWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Window{From: start, To: start.AddDate(0, 1, 0)}
}
