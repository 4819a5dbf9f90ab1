package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
)

var addCmd = &cobra.Command{
	Use:     "add <income|expense> <category> <amount> [date]",
	Short:   "Record a transaction (date defaults to today)",
	Example: "  tally add expense food 12.50\n  tally add income salary 1000 2024-01-05",
	Args:    cobra.RangeArgs(3, 4),
	RunE:    runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseKind(args[0])
	if err != nil {
		return err
	}
	category := strings.TrimSpace(args[1])
	if category == "" {
		return fmt.Errorf("category is required")
	}
	amount, err := model.ParseAmount(args[2])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	date := a.tracker.Now().Format(model.DateLayout)
	if len(args) == 4 {
		if date, err = model.ParseDate(args[3]); err != nil {
			return err
		}
	}

	tx, err := a.tracker.AddTransaction(ctx, kind, category, amount, date)
	if err != nil {
		return err
	}

	fmt.Printf("  Transaction added successfully! #%d  %s  %s  %s  %s\n",
		tx.ID, tx.Date, tx.Kind, tx.Category, cli.FormatMoney(a.cfg.General.Currency, tx.Amount))
	return nil
}
