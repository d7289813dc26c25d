// Package categories handles category style display and scaffolding
package categories

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/models"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the spending categories and their display styles",
	RunE:  showFunc,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the category styles file for editing",
	Long: `Write the active category styles to categories.yaml so colors and
icons can be customized. Existing overrides are preserved.`,
	RunE: initFunc,
}

func init() {
	Cmd.AddCommand(initCmd)
}

func showFunc(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tICON\tCOLOR")
	for _, cat := range models.AllCategories {
		style := root.Styles.Style(cat)
		fmt.Fprintf(w, "%s\t%s\t%s\n", cat, style.Icon, style.Color)
	}
	return w.Flush()
}

func initFunc(cmd *cobra.Command, args []string) error {
	if err := root.Styles.Save(); err != nil {
		return err
	}
	fmt.Println("Wrote category styles file")
	return nil
}
