package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tui"
)

var (
	flagFrom     string
	flagTo       string
	flagCategory string
	flagKind     string
	flagPlain    bool
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx", "ls"},
	Short:   "List transactions in a date range (default: this month)",
	Args:    cobra.NoArgs,
	RunE:    runTransactions,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Income, expenses and savings for a date range (default: this month)",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	for _, c := range []*cobra.Command{transactionsCmd, reportCmd} {
		c.Flags().StringVar(&flagFrom, "from", "", "Start date, inclusive (YYYY-MM-DD)")
		c.Flags().StringVar(&flagTo, "to", "", "End date, inclusive (YYYY-MM-DD)")
	}
	transactionsCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Only this category")
	transactionsCmd.Flags().StringVarP(&flagKind, "kind", "k", "", "Only income or expense")
	transactionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table even on a terminal")
	rootCmd.AddCommand(transactionsCmd, reportCmd)
}

// dateRange resolves --from/--to, defaulting to the month containing now.
func dateRange(a *app) (string, string, error) {
	start, end := model.MonthBounds(a.tracker.Now())
	var err error
	if flagFrom != "" {
		if start, err = model.ParseDate(flagFrom); err != nil {
			return "", "", err
		}
	}
	if flagTo != "" {
		if end, err = model.ParseDate(flagTo); err != nil {
			return "", "", err
		}
	}
	if start > end {
		return "", "", fmt.Errorf("--from %s is after --to %s", start, end)
	}
	return start, end, nil
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	start, end, err := dateRange(a)
	if err != nil {
		return err
	}

	txs, err := a.tracker.Transactions(ctx, start, end)
	if err != nil {
		return err
	}
	if flagCategory != "" {
		txs = pipeline.FilterByCategory(txs, flagCategory)
	}
	if flagKind != "" {
		kind, err := model.ParseKind(flagKind)
		if err != nil {
			return err
		}
		txs = pipeline.FilterByKind(txs, kind)
	}

	title := fmt.Sprintf("Transactions %s .. %s", start, end)
	currency := a.cfg.General.Currency
	if !flagPlain && len(txs) > 0 && stdoutIsTerminal() && stdinIsTerminal() {
		return tui.RunBrowser(title, currency, txs, os.Stdin, os.Stdout)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.TransactionTable(title, currency, txs)))
	if len(txs) > 0 {
		r := pipeline.Summarize(txs)
		fmt.Printf("  %d transactions  in %s  out %s  net %s\n",
			r.Transactions,
			cli.FormatMoney(currency, r.TotalIncome),
			cli.FormatMoney(currency, r.TotalExpenses),
			cli.FormatSigned(currency, r.Savings))
	}
	return nil
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	if err := a.requireLogin(); err != nil {
		return err
	}

	start, end, err := dateRange(a)
	if err != nil {
		return err
	}

	r, err := a.tracker.Report(ctx, start, end)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderReport(r, a.cfg.General.Currency))
	return nil
}
