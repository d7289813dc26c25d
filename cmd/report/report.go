// Package report handles spending summaries
package report

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/aggregate"
	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/models"
)

var days int

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show totals, category breakdown and daily spending",
	RunE:  reportFunc,
}

func init() {
	Cmd.Flags().IntVarP(&days, "days", "d", 14, "Days of daily spending to show (0 = all)")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	txs := root.Store.List()
	code := root.Store.Currency()

	summary := aggregate.Totals(txs)
	fmt.Printf("Income:  %s\n", currency.Format(summary.Income, code))
	fmt.Printf("Expense: %s\n", currency.Format(summary.Expense, code))
	fmt.Printf("Balance: %s\n", currency.Format(summary.Balance, code))

	byCategory := aggregate.CategoryTotals(txs)
	if len(byCategory) > 0 {
		fmt.Println("\nSpending by category:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, cat := range models.AllCategories {
			total, ok := byCategory[cat]
			if !ok || total.IsZero() {
				continue
			}
			style := root.Styles.Style(cat)
			fmt.Fprintf(w, "  %s %s\t%s\n", style.Icon, cat, currency.Format(total, code))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	series := aggregate.DailySeries(txs, days)
	if len(series) > 0 {
		fmt.Println("\nDaily spending:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, entry := range series {
			fmt.Fprintf(w, "  %s\t%s\t%s\n",
				entry.Date, currency.Format(entry.Expense, code), bar(entry.Expense, maxExpense(series)))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// maxExpense finds the largest daily expense, for scaling the bars.
func maxExpense(series []aggregate.DayEntry) decimal.Decimal {
	max := decimal.Zero
	for _, entry := range series {
		if entry.Expense.GreaterThan(max) {
			max = entry.Expense
		}
	}
	return max
}

// bar renders a proportional text bar up to 20 characters wide.
func bar(value, max decimal.Decimal) string {
	if max.IsZero() || value.IsZero() {
		return ""
	}
	width := value.Div(max).Mul(decimal.NewFromInt(20)).IntPart()
	if width < 1 {
		width = 1
	}
	out := make([]rune, width)
	for i := range out {
		out[i] = '█'
	}
	return string(out)
}
