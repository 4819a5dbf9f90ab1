package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/session"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

var (
	flagUsername string
	flagPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and stay logged in for later commands",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved login",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVarP(&flagUsername, "username", "u", "", "Username (prompted when omitted)")
		c.Flags().StringVarP(&flagPassword, "password", "p", "", "Password (prompted when omitted)")
	}
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

// credentials returns the flag values, prompting for whichever is missing.
func credentials(title string, accessible bool) (string, string, error) {
	username, password := strings.TrimSpace(flagUsername), flagPassword
	if username != "" && password != "" {
		return username, password, nil
	}

	var fields []huh.Field
	if username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&username).Validate(notBlank("username")))
	}
	if password == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password).Validate(notBlank("password")))
	}
	err := huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithTheme(theme.Active.Form()).
		WithAccessible(accessible || !stdinIsTerminal()).
		Run()
	return strings.TrimSpace(username), password, err
}

func notBlank(field string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func runRegister(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	username, password, err := credentials("Register", a.cfg.Appearance.Accessible)
	if err != nil {
		return err
	}

	ok, err := a.tracker.Register(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("username already exists")
	}
	fmt.Println("  Registration successful!")
	return nil
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	username, password, err := credentials("Login", a.cfg.Appearance.Accessible)
	if err != nil {
		return err
	}

	ok, err := a.tracker.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid credentials")
	}
	fmt.Printf("  Logged in as %s (for %dh)\n", username, a.cfg.Auth.SessionHours)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.tracker.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("  Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	u, ok := a.tracker.Session().Current()
	if !ok {
		return session.ErrUnauthenticated
	}
	fmt.Println(u.Username)
	return nil
}
