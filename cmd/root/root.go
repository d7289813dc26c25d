// Package root contains the root command for the application
package root

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/WeiChun0723/Moni/internal/categories"
	"github.com/WeiChun0723/Moni/internal/config"
	"github.com/WeiChun0723/Moni/internal/export"
	"github.com/WeiChun0723/Moni/internal/storage"
	"github.com/WeiChun0723/Moni/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Store is the shared transaction store, opened in PersistentPreRunE
	Store *store.Store

	// Styles resolves category display metadata
	Styles *categories.StyleStore

	cleanup storage.CleanupFunc

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "moni",
		Short: "A personal finance tracker with AI statement scanning.",
		Long: `moni tracks income and expense transactions, aggregates them into
spending reports and extracts transactions from bank statements and
receipts using the Gemini model.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to moni!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				return err
			}
			Log = config.ConfigureLoggingFromConfig(Cfg)

			// Set the configured logger everywhere
			export.SetLogger(Log)
			categories.SetLogger(Log)

			Styles = categories.NewStyleStore("")
			if err := Styles.Load(); err != nil {
				Log.Warnf("Failed to load category styles: %v", err)
			}

			backend := storage.Backend(Cfg.Storage.Backend)
			if !backend.Valid() {
				return fmt.Errorf("unsupported storage backend: %s", Cfg.Storage.Backend)
			}

			repo, cf, err := storage.Open(storage.Config{
				Backend: backend,
				Path:    Cfg.Storage.Path,
			}, Log)
			if err != nil {
				return err
			}
			cleanup = cf

			Store, err = store.New(repo)
			if err != nil {
				return err
			}
			Store.SetFallbackCurrency(Cfg.Currency.Default)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				if err := cleanup(); err != nil {
					Log.Warnf("Failed to close storage backend: %v", err)
				}
			}
		},
	}
)
