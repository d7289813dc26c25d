// Package scan handles AI statement extraction
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/cmd/root"
	"github.com/WeiChun0723/Moni/internal/currency"
	"github.com/WeiChun0723/Moni/internal/extraction"
	"github.com/WeiChun0723/Moni/internal/scanerror"
)

var password string

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Extract transactions from a statement or receipt",
	Long: `Scan a bank statement or receipt (PDF or image) with the Gemini model
and add every extracted transaction to the collection. Encrypted PDFs
prompt for a password, with retries until the document unlocks.`,
	Args: cobra.ExactArgs(1),
	RunE: scanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&password, "password", "p", "", "PDF password for encrypted documents")
}

func scanFunc(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	extractor, err := extraction.NewGeminiExtractor(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model, root.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := extractor.Close(); err != nil {
			root.Log.Warnf("Failed to close Gemini client: %v", err)
		}
	}()

	pipeline := extraction.NewPipeline(extractor, root.Store, root.Log)
	pipeline.SetMaxFileSize(int64(root.Cfg.Scan.MaxFileSizeMB) << 20)
	pipeline.SetExtractTimeout(time.Duration(root.Cfg.AI.TimeoutSeconds) * time.Second)

	result, err := pipeline.Submit(ctx, path)

	// An encrypted document suspends the pipeline; feed it passwords until it
	// unlocks or the user gives up.
	reader := bufio.NewReader(os.Stdin)
	for err != nil {
		var required *scanerror.PasswordRequiredError
		var incorrect *scanerror.IncorrectPasswordError

		switch {
		case errors.As(err, &required):
			if password != "" {
				result, err = pipeline.SubmitPassword(ctx, password)
				password = ""
				continue
			}
			fmt.Print("This PDF is encrypted. Enter password: ")
		case errors.As(err, &incorrect):
			fmt.Print("Incorrect password. Try again: ")
		default:
			return err
		}

		line, readErr := reader.ReadString('\n')
		entered := strings.TrimSpace(line)
		if readErr != nil || entered == "" {
			pipeline.Cancel()
			return fmt.Errorf("scan cancelled")
		}
		result, err = pipeline.SubmitPassword(ctx, entered)
	}

	code := root.Store.Currency()
	fmt.Printf("Added %d transactions:\n", len(result.Added))
	for _, t := range result.Added {
		fmt.Printf("  %s  %-30s %s (%s)\n",
			t.Date, t.Description, currency.Format(t.Amount, code), t.Category)
	}
	return nil
}
