package cli

import (
	"fmt"
	"time"

	"leadsweb/leads"
	"leadsweb/models"

	"github.com/fatih/color"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			res := leads.Login(cmd.Context(), app.client(), st, email, password)
			if res.Nav != leads.NavList {
				return serr.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.New(color.FgGreen).Sprint("Logged in as "+email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", envOr("LEADS_EMAIL", ""), "Account email")
	cmd.Flags().StringVar(&password, "password", envOr("LEADS_PASSWORD", ""), "Account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			if err := st.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored token belongs to and when it expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			tok, err := app.token(st)
			if err != nil {
				return err
			}
			info, err := models.ParseTokenInfo(tok)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Subject:", info.Subject)
			if info.ExpiresAt.IsZero() {
				fmt.Fprintln(out, "Expires: never")
				return nil
			}
			expiry := info.ExpiresAt.Local().Format(time.RFC1123)
			if info.Expired(time.Now()) {
				fmt.Fprintln(out, "Expires:", color.New(color.FgRed).Sprint(expiry+" (expired)"))
			} else {
				fmt.Fprintln(out, "Expires:", expiry)
			}
			return nil
		},
	}
}
