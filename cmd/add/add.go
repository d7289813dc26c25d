// Package add handles manual transaction entry
package add

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/models"
)

var (
	date        string
	description string
	amount      string
	category    string
	txType      string
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction",
	Long:  `Add a single income or expense transaction to the collection.`,
	RunE:  addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Transaction date (YYYY-MM-DD, default today)")
	Cmd.Flags().StringVarP(&description, "description", "n", "", "Transaction description")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Transaction amount")
	Cmd.Flags().StringVarP(&category, "category", "c", "Other", "Spending category")
	Cmd.Flags().StringVarP(&txType, "type", "t", "expense", "Transaction type (expense or income)")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}

	value, err := models.ParseAmount(amount)
	if err != nil {
		return err
	}

	t := models.Transaction{
		Date:        date,
		Description: description,
		Amount:      value,
		Category:    models.NormalizeCategory(category),
		Type:        models.ParseTransactionType(txType),
	}

	added, err := root.Store.Add(t)
	if err != nil {
		return err
	}

	code := root.Store.Currency()
	fmt.Printf("Added %s: %s %s (%s, %s)\n",
		added.ID, added.Description, currency.Format(added.Amount, code), added.Category, added.Type)
	return nil
}
