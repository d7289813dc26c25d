// Package currency handles display currency selection
package currency

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/currency"
)

// Cmd represents the currency command
var Cmd = &cobra.Command{
	Use:   "currency",
	Short: "Show or change the display currency",
	Long: `Show the active display currency and the supported codes.
Changing the currency only affects presentation; stored amounts are
never converted.`,
	RunE: showFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <code>",
	Short: "Select the display currency",
	Args:  cobra.ExactArgs(1),
	RunE:  setFunc,
}

func init() {
	Cmd.AddCommand(setCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	active := root.Store.Currency()
	fmt.Printf("Active currency: %s (%s)\n", active, currency.Lookup(active).Symbol)
	fmt.Println("Supported:")
	for _, code := range currency.Codes() {
		cfg := currency.Lookup(code)
		marker := " "
		if code == active {
			marker = "*"
		}
		fmt.Printf("  %s %s  %s\n", marker, cfg.Code, cfg.Symbol)
	}
	return nil
}

func setFunc(cmd *cobra.Command, args []string) error {
	code := args[0]
	if err := root.Store.SetCurrency(code); err != nil {
		return err
	}
	fmt.Printf("Display currency set to %s\n", root.Store.Currency())
	return nil
}
