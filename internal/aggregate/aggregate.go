// Package aggregate computes totals, category breakdowns and daily series
// from the transaction collection. All functions are pure and recompute from
// the full collection on demand; there is no incremental maintenance.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/WeiChun0723/Moni/internal/models"
)

// Summary holds the three headline figures.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Totals sums income and expense amounts; balance is income minus expense.
func Totals(txs []models.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txs {
		switch {
		case t.IsIncome():
			income = income.Add(t.Amount)
		case t.IsExpense():
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// CategoryTotals maps each category to the sum of its expense amounts.
// Income transactions are excluded; categories outside the enumeration fold
// into the catch-all.
func CategoryTotals(txs []models.Transaction) map[models.Category]decimal.Decimal {
	totals := make(map[models.Category]decimal.Decimal)
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		cat := t.Category
		if !cat.Valid() {
			cat = models.CategoryOther
		}
		totals[cat] = totals[cat].Add(t.Amount)
	}
	return totals
}

// DayEntry is one calendar day of the daily series.
type DayEntry struct {
	Date    string
	Expense decimal.Decimal
	Income  decimal.Decimal
}

// DailySeries produces one entry per calendar day from the earliest to the
// latest transaction date inclusive, ascending, with zero-filled gap days.
// A positive windowDays truncates the result to the most recent N entries.
// Transactions whose date does not parse are skipped.
func DailySeries(txs []models.Transaction, windowDays int) []DayEntry {
	type daily struct {
		expense decimal.Decimal
		income  decimal.Decimal
	}
	byDay := make(map[string]daily)

	var minDay, maxDay time.Time
	for _, t := range txs {
		day, err := t.DateValue()
		if err != nil {
			continue
		}
		if minDay.IsZero() || day.Before(minDay) {
			minDay = day
		}
		if maxDay.IsZero() || day.After(maxDay) {
			maxDay = day
		}

		entry := byDay[t.Date]
		switch {
		case t.IsExpense():
			entry.expense = entry.expense.Add(t.Amount)
		case t.IsIncome():
			entry.income = entry.income.Add(t.Amount)
		}
		byDay[t.Date] = entry
	}

	if minDay.IsZero() {
		return nil
	}

	// The day loop walks min to max, so the series is already ascending.
	var series []DayEntry
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		key := day.Format(models.DateLayout)
		entry := byDay[key]
		series = append(series, DayEntry{
			Date:    key,
			Expense: entry.expense.Add(decimal.Zero),
			Income:  entry.income.Add(decimal.Zero),
		})
	}

	if windowDays > 0 && len(series) > windowDays {
		series = series[len(series)-windowDays:]
	}
	return series
}
