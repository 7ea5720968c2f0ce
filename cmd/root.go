package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantryhq/pantry/internal/config"
	"github.com/pantryhq/pantry/internal/graph"
	"github.com/pantryhq/pantry/internal/logging"
	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/store"
	"github.com/pantryhq/pantry/internal/ui"
)

var (
	cfg         *config.Config
	pantryStore *store.Store
)

var (
	configPath string
	dbDriver   string
	dbDSN      string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "A GraphQL service for ingredient categories",
	Long: `Pantry keeps a catalogue of ingredients grouped into categories and
exposes it over GraphQL. Run 'pantry serve' for the HTTP API, or use the
category, ingredient and graphql commands to work with the database directly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		log, err := logging.Setup(os.Stderr, logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
		if err != nil {
			return err
		}

		// init only writes the config file
		if cmd.Name() == "init" {
			return nil
		}

		pantryStore, err = store.Open(cfg.Database, log)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// closeStore closes the open store, if any.
func closeStore() error {
	if pantryStore == nil {
		return nil
	}
	err := pantryStore.Close()
	pantryStore = nil
	return err
}

// loadConfig layers the config file, .env, PANTRY_* variables and flags.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	if dbDriver != "" {
		c.SetDriver(dbDriver)
	}
	if dbDSN != "" {
		c.Database.DSN = dbDSN
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// newResolver returns a resolver over the open store.
func newResolver() *graph.Resolver {
	return &graph.Resolver{Store: pantryStore, Logger: logging.L()}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigFile, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", "", "Database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "database", "", "Database DSN (file path for sqlite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := execute(); err != nil {
		// JSON failures have already been printed as an envelope.
		var jsonErr *output.JSONError
		if !errors.As(err, &jsonErr) {
			fmt.Fprintln(os.Stderr, ui.Danger.Render("Error:"), err)
		}
		os.Exit(1)
	}
}

// execute runs the root command. Cobra skips PersistentPostRunE when RunE
// fails, so the store is closed here on that path too.
func execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}
