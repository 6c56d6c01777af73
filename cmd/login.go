package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	"github.com/dlyog/dl-creator-cli/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var form domain.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the driving-license service",
		Long:  "Sign in with email and password. Missing values are read from stdin, one per line.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(domain.RouteLogin)
			if err != nil || !allowed {
				return err
			}

			prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			form.Email = prompt.value(form.Email, "Email: ")
			form.Password = prompt.value(form.Password, "Password: ")

			session, err := app.auth.Login(cmd.Context(), form)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}

			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", profileName(session)); err != nil {
				return err
			}
			return app.router.Visit(domain.RouteHome)
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "Account password")

	return cmd
}

func newRegisterCmd(app *app) *cobra.Command {
	var form domain.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  "Create an account with full name, email and password. Missing values are read from stdin, one per line.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(domain.RouteRegister)
			if err != nil || !allowed {
				return err
			}

			prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			form.FullName = prompt.value(form.FullName, "Full Name: ")
			form.Email = prompt.value(form.Email, "Email: ")
			form.Password = prompt.value(form.Password, "Password: ")

			if _, err := app.auth.Register(cmd.Context(), form); err != nil {
				return fmt.Errorf("register: %w", err)
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Registration successful! Please log in."); err != nil {
				return err
			}
			return app.router.Visit(domain.RouteLogin)
		},
	}

	cmd.Flags().StringVar(&form.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "Account password (at least 6 characters)")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.auth.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.router.write(cmd.OutOrStdout(), licenserender.View{
				Page:    licenserender.PageWhoami,
				Session: app.session.GetSession(),
			})
		},
	}
}

func profileName(session domain.Session) string {
	if session.Profile != nil && session.Profile.DisplayName != "" {
		return session.Profile.DisplayName
	}
	return "driver"
}

// prompter fills missing form values from line-oriented input.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *prompter) value(current string, label string) string {
	if current != "" {
		return current
	}

	_, _ = fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		return ""
	}
	return strings.TrimRight(p.scanner.Text(), "\r")
}
