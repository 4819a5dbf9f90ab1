package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file alone so environment overrides are not baked in.
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return err
	}
	applyAppearance(cfg)

	vals := tui.SetupValuesFrom(cfg)
	form := tui.NewSetupForm(&vals).WithAccessible(cfg.Appearance.Accessible || !stdinIsTerminal())
	if err := form.Run(); err != nil {
		return err
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(flagConfig, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", configPath())
	fmt.Println("  Run `tally setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
