// Package export handles CSV export of the transaction collection
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/export"
)

var output string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions to CSV",
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "transactions.csv", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	txs := root.Store.List()
	if err := export.WriteTransactionsToCSV(txs, output); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(txs), output)
	return nil
}
