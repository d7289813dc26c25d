// Package remove handles transaction deletion
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a transaction by id",
	Args:  cobra.ExactArgs(1),
	RunE:  removeFunc,
}

func removeFunc(cmd *cobra.Command, args []string) error {
	id := args[0]
	before := root.Store.Len()

	if err := root.Store.Remove(id); err != nil {
		return err
	}

	if root.Store.Len() == before {
		fmt.Printf("No transaction with id %s\n", id)
		return nil
	}
	fmt.Printf("Removed %s\n", id)
	return nil
}
