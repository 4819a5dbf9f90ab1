package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Monthly budgets per category",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set or replace a category budget",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetCheckCmd = &cobra.Command{
	Use:   "check <category>",
	Short: "Compare a budget with this month's expenses",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetCheck,
}

var budgetListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every budget with this month's expenses",
	Args:    cobra.NoArgs,
	RunE:    runBudgetList,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd, budgetCheckCmd, budgetListCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	category := strings.TrimSpace(args[0])
	if category == "" {
		return fmt.Errorf("category is required")
	}
	amount, err := model.ParseAmount(args[1])
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

	if err := a.tracker.SetBudget(ctx, category, amount); err != nil {
		return err
	}
	fmt.Printf("  Budget set successfully! %s: %s per month\n", category, cli.FormatMoney(a.cfg.General.Currency, amount))
	return nil
}

func runBudgetCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	status, found, err := a.tracker.CheckBudget(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("  No budget set for this category.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderBudgetStatus(status, a.cfg.General.Currency))
	return nil
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	statuses, err := a.tracker.Budgets(ctx)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("  No budgets set.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.BudgetTable(a.cfg.General.Currency, statuses)))

	var over []string
	for _, s := range statuses {
		if s.Exceeded() {
			over = append(over, s.Category)
		}
	}
	if len(over) > 0 {
		fmt.Println("  " + cli.RenderWarning("Over budget: "+strings.Join(over, ", ")))
	}
	return nil
}
