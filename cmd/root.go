package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/digest"
	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/session"
	"github.com/theirongolddev/tally/internal/store"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

var (
	flagConfig  string
	flagDB      string
	flagNoColor bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "tally",
	Short:        "Personal finance tracker",
	Long:         "Track income and expenses, set monthly budgets per category, and report savings.",
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (overrides config and TALLY_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
}

// app bundles what a command needs: effective config, logger, store and tracker.
type app struct {
	cfg     config.Config
	log     *log.Logger
	store   *store.Store
	tracker *tracker.Tracker
}

// loadConfig resolves the effective configuration: config file, then .env and
// environment, then --db.
func loadConfig() (config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.Storage.DBPath = flagDB
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cfg.Log.Level)
	if flagVerbose {
		lc.Level = log.ParseLevel("debug")
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

func applyAppearance(cfg config.Config) {
	theme.SetActive(cfg.Appearance.Theme)
	if flagNoColor || cfg.Appearance.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// openApp loads config and opens the ledger. With persist set, logins are
// saved to disk and a previous login is resumed.
func openApp(ctx context.Context, persist bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	applyAppearance(cfg)

	d, err := digest.Lookup(cfg.Auth.Digest)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.DBPath, store.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	opts := []tracker.Option{tracker.WithLogger(logger)}
	if persist {
		opts = append(opts, tracker.WithTokens(session.NewTokenStore(cfg.SessionDir(), cfg.SessionTTL())))
	}
	tr := tracker.New(st, d, opts...)

	if persist {
		if _, err := tr.Resume(ctx); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	return &app{cfg: cfg, log: logger, store: st, tracker: tr}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// requireLogin fails with a hint when no saved session was resumed.
func (a *app) requireLogin() error {
	if !a.tracker.Session().Authenticated() {
		return fmt.Errorf("%w: run `tally login` first", session.ErrUnauthenticated)
	}
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
