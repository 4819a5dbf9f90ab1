package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/digest"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	Currency     string
	DBPath       string
	Digest       string
	SessionHours string
	Theme        string
	Accessible   bool
}

// SetupValuesFrom seeds the wizard with cfg's current settings.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		Currency:     cfg.General.Currency,
		DBPath:       cfg.Storage.DBPath,
		Digest:       cfg.Auth.Digest,
		SessionHours: strconv.Itoa(cfg.Auth.SessionHours),
		Theme:        cfg.Appearance.Theme,
		Accessible:   cfg.Appearance.Accessible,
	}
}

// Apply copies the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	hours, err := strconv.Atoi(strings.TrimSpace(v.SessionHours))
	if err != nil {
		return fmt.Errorf("session hours %q: %w", v.SessionHours, err)
	}

	cfg.General.Currency = v.Currency
	cfg.Storage.DBPath = strings.TrimSpace(v.DBPath)
	cfg.Auth.Digest = v.Digest
	cfg.Auth.SessionHours = hours
	cfg.Appearance.Theme = v.Theme
	cfg.Appearance.Accessible = v.Accessible
	return cfg.Validate()
}

// NewSetupForm builds the first-run wizard writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}
	digestOpts := huh.NewOptions(digest.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally!").
				Description("Let's set up a few things.\nRun `tally setup` anytime to reconfigure."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Description("Printed in front of amounts, e.g. $ or EUR ").
				Value(&vals.Currency),
			huh.NewInput().
				Title("Database file").
				Value(&vals.DBPath).
				Validate(required("database file")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Password digest").
				Description("Changing this locks out existing users.").
				Options(digestOpts...).
				Value(&vals.Digest),
			huh.NewInput().
				Title("Stay logged in for (hours)").
				Value(&vals.SessionHours).
				Validate(validHours),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Accessible mode").
				Description("Plain prompts for screen readers.").
				Value(&vals.Accessible),
		),
	).WithTheme(theme.Active.Form())
}

func validHours(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number of hours greater than zero")
	}
	return nil
}
