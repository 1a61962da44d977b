// Package commands implements the contactsctl command tree. Every command
// works directly against the configured storage backend, so it must not run
// while the server writes to the same file.
package commands

import (
	"context"
	"os"

	"github.com/JonMunkholm/countycontacts/internal/app"
	"github.com/JonMunkholm/countycontacts/internal/config"
	"github.com/JonMunkholm/countycontacts/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	backend  string
	dataFile string
	logLevel string

	appCtx *app.App
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "contactsctl",
		Short:        "Manage county contacts from the command line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadFrom(flagOverrides(os.Getenv))
			if err != nil {
				return err
			}

			// Keep stdout clean for CSV and table output.
			logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			appCtx, err = app.New(ctx, cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&backend, "backend", "", "storage backend (file, postgres, dynamodb, memory)")
	root.PersistentFlags().StringVar(&dataFile, "data", "", "contact document path for the file backend")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(listCmd(), getCmd(), putCmd(), importCmd(), exportCmd())
	return root
}

// flagOverrides lets command-line flags take precedence over the environment
// before the configuration is validated.
func flagOverrides(getenv func(string) string) func(string) string {
	flags := map[string]string{
		"STORAGE_BACKEND": backend,
		"DATA_FILE":       dataFile,
		"LOG_LEVEL":       logLevel,
	}
	return func(key string) string {
		if v := flags[key]; v != "" {
			return v
		}
		return getenv(key)
	}
}
