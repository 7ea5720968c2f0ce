package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pantryhq/pantry/internal/output"
	"github.com/pantryhq/pantry/internal/ui"
)

var (
	initJSON  bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Creates pantry.toml (or the file named by --config) with the effective
settings: defaults, overridden by .env, PANTRY_* variables and flags.

An existing file is left untouched unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return cmdError(initJSON, output.ErrConfig, "%s already exists (use --force to overwrite)", configPath)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cmdError(initJSON, output.ErrConfig, "checking %s: %v", configPath, err)
		}

		if err := cfg.Save(configPath); err != nil {
			return cmdError(initJSON, output.ErrConfig, "failed to write config: %v", err)
		}

		if initJSON {
			return output.Success(cfg, "Config written to "+configPath)
		}

		fmt.Println(ui.Success.Render("Wrote ") + configPath)
		fmt.Println(ui.Muted.Render(fmt.Sprintf("database: %s %s", cfg.Database.Driver, cfg.Database.DSN)))
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initJSON, "json", false, "Output as JSON")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
