package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tui"
)

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"tui"},
	Short:   "Interactive menu (the default when no command is given)",
	Args:    cobra.NoArgs,
	RunE:    runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShell starts the menu loop. Its login lasts only for this process.
func runShell(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	currency := a.cfg.General.Currency
	browse := func(title string, txs []model.Transaction) error {
		if stdoutIsTerminal() && stdinIsTerminal() {
			return tui.RunBrowser(title, currency, txs, os.Stdin, os.Stdout)
		}
		_, err := os.Stdout.WriteString(cli.RenderTable(cli.TransactionTable(title, currency, txs)))
		return err
	}

	sh := tui.NewShell(a.tracker, tui.ShellConfig{
		Currency:   currency,
		Accessible: a.cfg.Appearance.Accessible || !stdinIsTerminal(),
		Browse:     browse,
		Logger:     a.log,
	})
	return sh.Run(ctx)
}
