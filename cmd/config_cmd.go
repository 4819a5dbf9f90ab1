// Package cmd implements the tally CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", configPath())
	if config.Exists(flagConfig) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Currency:      %q\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Storage]")
	fmt.Printf("    Database:      %s\n", cfg.Storage.DBPath)
	fmt.Println()

	fmt.Println("  [Auth]")
	fmt.Printf("    Digest:        %s\n", cfg.Auth.Digest)
	fmt.Printf("    Session hours: %d\n", cfg.Auth.SessionHours)
	fmt.Printf("    Session dir:   %s\n", cfg.SessionDir())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:         %s\n", cfg.Appearance.Theme)
	fmt.Printf("    No color:      %v\n", cfg.Appearance.NoColor)
	fmt.Printf("    Accessible:    %v\n", cfg.Appearance.Accessible)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:         %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Environment overrides: TALLY_DB_PATH, TALLY_DIGEST, TALLY_CURRENCY,")
	fmt.Println("  TALLY_LOG_LEVEL, TALLY_THEME, TALLY_SESSION_HOURS (also read from ./.env)")
	fmt.Println("  Run `tally setup` to reconfigure.")
	return nil
}
