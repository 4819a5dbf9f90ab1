// Package tui implements tally's interactive front end: a huh menu loop over
// the tracker and a bubbletea transaction browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// Menu choices.
const (
	choiceRegister    = "register"
	choiceLogin       = "login"
	choiceExit        = "exit"
	choiceAdd         = "add"
	choiceView        = "view"
	choiceReport      = "report"
	choiceSetBudget   = "set-budget"
	choiceCheckBudget = "check-budget"
	choiceListBudgets = "list-budgets"
	choiceLogout      = "logout"
)

// BrowseFunc displays a list of transactions.
type BrowseFunc func(title string, txs []model.Transaction) error

// ShellConfig configures a Shell. Zero values fall back to stdin, stdout,
// a "$" currency and a plain table for browsing.
type ShellConfig struct {
	Currency   string
	Accessible bool
	Input      io.Reader
	Output     io.Writer
	Browse     BrowseFunc
	Logger     *log.Logger
}

// Shell is the interactive menu loop. Its session lives only as long as Run.
type Shell struct {
	tracker    *tracker.Tracker
	currency   string
	accessible bool
	in         io.Reader
	out        io.Writer
	browse     BrowseFunc
	log        *log.Logger
}

// NewShell returns a shell driving tr.
func NewShell(tr *tracker.Tracker, cfg ShellConfig) *Shell {
	s := &Shell{
		tracker:    tr,
		currency:   cfg.Currency,
		accessible: cfg.Accessible,
		in:         cfg.Input,
		out:        cfg.Output,
		browse:     cfg.Browse,
		log:        cfg.Logger,
	}
	if s.currency == "" {
		s.currency = "$"
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.browse == nil {
		s.browse = s.printTransactions
	}
	if s.log == nil {
		s.log = log.Discard()
	}
	s.log = s.log.WithComponent(log.ComponentShell)
	return s
}

// Run shows the menu until the user exits or aborts it.
func (s *Shell) Run(ctx context.Context) error {
	for {
		var (
			exit bool
			err  error
		)
		if s.tracker.Session().Authenticated() {
			exit, err = s.userMenu(ctx)
		} else {
			exit, err = s.anonymousMenu(ctx)
		}

		switch {
		case errors.Is(err, huh.ErrUserAborted):
			return nil
		case err != nil:
			return err
		case exit:
			return nil
		}
	}
}

func (s *Shell) anonymousMenu(ctx context.Context) (bool, error) {
	var choice string
	err := s.form(huh.NewGroup(
		huh.NewSelect[string]().
			Title("tally").
			Options(
				huh.NewOption("Register", choiceRegister),
				huh.NewOption("Login", choiceLogin),
				huh.NewOption("Exit", choiceExit),
			).
			Value(&choice),
	)).RunWithContext(ctx)
	if err != nil {
		return false, err
	}

	s.log.DebugContext(ctx, "menu", "choice", choice)
	switch choice {
	case choiceRegister:
		return false, s.action(ctx, s.promptRegister)
	case choiceLogin:
		return false, s.action(ctx, s.promptLogin)
	}
	return true, nil
}

func (s *Shell) userMenu(ctx context.Context) (bool, error) {
	u, _ := s.tracker.Session().Current()

	var choice string
	err := s.form(huh.NewGroup(
		huh.NewSelect[string]().
			Title("tally").
			Description("Logged in as "+u.Username).
			Options(
				huh.NewOption("Add transaction", choiceAdd),
				huh.NewOption("View transactions", choiceView),
				huh.NewOption("Generate report", choiceReport),
				huh.NewOption("Set budget", choiceSetBudget),
				huh.NewOption("Check budget", choiceCheckBudget),
				huh.NewOption("List budgets", choiceListBudgets),
				huh.NewOption("Logout", choiceLogout),
			).
			Value(&choice),
	)).RunWithContext(ctx)
	if err != nil {
		return false, err
	}

	s.log.DebugContext(ctx, "menu", "choice", choice)
	switch choice {
	case choiceAdd:
		return false, s.action(ctx, s.promptAddTransaction)
	case choiceView:
		return false, s.action(ctx, s.promptViewTransactions)
	case choiceReport:
		return false, s.action(ctx, s.promptReport)
	case choiceSetBudget:
		return false, s.action(ctx, s.promptSetBudget)
	case choiceCheckBudget:
		return false, s.action(ctx, s.promptCheckBudget)
	case choiceListBudgets:
		return false, s.action(ctx, s.listBudgets)
	case choiceLogout:
		return false, s.action(ctx, s.logout)
	}
	return false, nil
}

// action runs fn and prints its result. Aborting a sub-form returns to the menu.
func (s *Shell) action(ctx context.Context, fn func(context.Context) (string, error)) error {
	msg, err := fn(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		s.println(cli.RenderMuted("Cancelled."))
		return nil
	}
	if err != nil {
		return err
	}
	if msg != "" {
		s.println(msg)
	}
	return nil
}

func (s *Shell) form(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).
		WithTheme(theme.Active.Form()).
		WithAccessible(s.accessible).
		WithInput(s.in).
		WithOutput(s.out)
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, strings.TrimRight(msg, "\n"))
}

func (s *Shell) credentials(ctx context.Context, title string) (string, string, error) {
	var username, password string
	err := s.form(huh.NewGroup(
		huh.NewInput().Title(title).Description("Username").Value(&username).Validate(required("username")),
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(required("password")),
	)).RunWithContext(ctx)
	return strings.TrimSpace(username), password, err
}

func (s *Shell) promptRegister(ctx context.Context) (string, error) {
	username, password, err := s.credentials(ctx, "Register")
	if err != nil {
		return "", err
	}
	return s.register(ctx, username, password)
}

func (s *Shell) promptLogin(ctx context.Context) (string, error) {
	username, password, err := s.credentials(ctx, "Login")
	if err != nil {
		return "", err
	}
	return s.login(ctx, username, password)
}

func (s *Shell) promptAddTransaction(ctx context.Context) (string, error) {
	kind := model.KindExpense.String()
	var category, amount string
	date := s.tracker.Now().Format(model.DateLayout)

	err := s.form(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Transaction type").
			Options(
				huh.NewOption("Expense", model.KindExpense.String()),
				huh.NewOption("Income", model.KindIncome.String()),
			).
			Value(&kind),
		huh.NewInput().Title("Category").Value(&category).Validate(required("category")),
		huh.NewInput().Title("Amount").Placeholder("12.50").Value(&amount).Validate(validAmount),
		huh.NewInput().Title("Date").Description("YYYY-MM-DD").Value(&date).Validate(validDate),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return s.addTransaction(ctx, kind, category, amount, date)
}

func (s *Shell) dateRange(ctx context.Context, title string) (string, string, error) {
	start, end := model.MonthBounds(s.tracker.Now())
	err := s.form(huh.NewGroup(
		huh.NewInput().Title(title).Description("Start date (YYYY-MM-DD)").Value(&start).Validate(validDate),
		huh.NewInput().Title("End date").Description("YYYY-MM-DD").Value(&end).Validate(validDate),
	)).RunWithContext(ctx)
	if err != nil {
		return "", "", err
	}
	return parseRange(start, end)
}

// parseRange normalizes both ends of a date range.
func parseRange(start, end string) (string, string, error) {
	var err error
	if start, err = model.ParseDate(start); err != nil {
		return "", "", err
	}
	if end, err = model.ParseDate(end); err != nil {
		return "", "", err
	}
	return start, end, nil
}

func (s *Shell) promptViewTransactions(ctx context.Context) (string, error) {
	start, end, err := s.dateRange(ctx, "View transactions")
	if err != nil {
		return "", err
	}
	return s.viewTransactions(ctx, start, end)
}

func (s *Shell) promptReport(ctx context.Context) (string, error) {
	start, end, err := s.dateRange(ctx, "Generate report")
	if err != nil {
		return "", err
	}
	return s.report(ctx, start, end)
}

func (s *Shell) promptSetBudget(ctx context.Context) (string, error) {
	var category, amount string
	err := s.form(huh.NewGroup(
		huh.NewInput().Title("Set budget").Description("Category").Value(&category).Validate(required("category")),
		huh.NewInput().Title("Monthly budget").Value(&amount).Validate(validAmount),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return s.setBudget(ctx, category, amount)
}

func (s *Shell) promptCheckBudget(ctx context.Context) (string, error) {
	var category string
	err := s.form(huh.NewGroup(
		huh.NewInput().Title("Check budget").Description("Category").Value(&category).Validate(required("category")),
	)).RunWithContext(ctx)
	if err != nil {
		return "", err
	}
	return s.checkBudget(ctx, category)
}

// The handlers below take already collected input and return the message to show.

func (s *Shell) register(ctx context.Context, username, password string) (string, error) {
	ok, err := s.tracker.Register(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return cli.RenderWarning("Username already exists."), nil
	}
	return "Registration successful!", nil
}

func (s *Shell) login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.tracker.Login(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return cli.RenderWarning("Invalid credentials."), nil
	}
	return fmt.Sprintf("Login successful! Welcome, %s.", username), nil
}

func (s *Shell) logout(ctx context.Context) (string, error) {
	if err := s.tracker.Logout(ctx); err != nil {
		return "", err
	}
	return "Logged out.", nil
}

func (s *Shell) addTransaction(ctx context.Context, kind, category, amount, date string) (string, error) {
	k, err := model.ParseKind(kind)
	if err != nil {
		return cli.RenderWarning(err.Error()), nil
	}
	amt, err := model.ParseAmount(amount)
	if err != nil {
		return cli.RenderWarning(err.Error()), nil
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return cli.RenderWarning(err.Error()), nil
	}

	if _, err := s.tracker.AddTransaction(ctx, k, strings.TrimSpace(category), amt, d); err != nil {
		return "", err
	}
	return "Transaction added successfully!", nil
}

func (s *Shell) viewTransactions(ctx context.Context, start, end string) (string, error) {
	txs, err := s.tracker.Transactions(ctx, start, end)
	if err != nil {
		return "", err
	}
	return "", s.browse(fmt.Sprintf("Transactions %s .. %s", start, end), txs)
}

func (s *Shell) printTransactions(title string, txs []model.Transaction) error {
	s.println(cli.RenderTable(cli.TransactionTable(title, s.currency, txs)))
	return nil
}

func (s *Shell) report(ctx context.Context, start, end string) (string, error) {
	r, err := s.tracker.Report(ctx, start, end)
	if err != nil {
		return "", err
	}
	return cli.RenderReport(r, s.currency), nil
}

func (s *Shell) setBudget(ctx context.Context, category, amount string) (string, error) {
	amt, err := model.ParseAmount(amount)
	if err != nil {
		return cli.RenderWarning(err.Error()), nil
	}
	if err := s.tracker.SetBudget(ctx, strings.TrimSpace(category), amt); err != nil {
		return "", err
	}
	return "Budget set successfully!", nil
}

func (s *Shell) checkBudget(ctx context.Context, category string) (string, error) {
	status, found, err := s.tracker.CheckBudget(ctx, strings.TrimSpace(category))
	if err != nil {
		return "", err
	}
	if !found {
		return "No budget set for this category.", nil
	}
	return cli.RenderBudgetStatus(status, s.currency), nil
}

func (s *Shell) listBudgets(ctx context.Context) (string, error) {
	statuses, err := s.tracker.Budgets(ctx)
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "No budgets set.", nil
	}
	return cli.RenderTable(cli.BudgetTable(s.currency, statuses)), nil
}

func required(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validAmount(v string) error {
	_, err := model.ParseAmount(v)
	return err
}

func validDate(v string) error {
	_, err := model.ParseDate(v)
	return err
}
