// Package list handles transaction listing
package list

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/models"
)

var limit int

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Long:  `List transactions in display order: date descending, newest first within a day.`,
	RunE:  listFunc,
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most N transactions (0 = all)")
}

func listFunc(cmd *cobra.Command, args []string) error {
	txs := root.Store.List()
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}

	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return nil
	}

	code := root.Store.Currency()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tAMOUNT\tCATEGORY\tID")
	for _, t := range txs {
		amount := currency.Format(t.Amount, code)
		if t.Type == models.TypeExpense {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Date, t.Description, amount, t.Category, t.ID)
	}
	return w.Flush()
}
