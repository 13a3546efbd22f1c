package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"leadsweb/leads"
	"leadsweb/models"

	"github.com/fatih/color"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var page int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of leads (5 per page)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			if _, err := app.token(st); err != nil {
				return err
			}

			v := leads.NewView(app.client(), st)
			v.SetPage(page)
			res := v.Load(cmd.Context())
			if res.Nav == leads.NavLogin {
				return errSessionExpired
			}
			if res.Message != "" {
				return serr.New(res.Message)
			}

			snap := v.Snapshot()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			return writeTable(cmd.OutOrStdout(), snap)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page as JSON")
	return cmd
}

type leadFlags struct {
	name, email, phone, status string
}

func (f *leadFlags) register(cmd *cobra.Command, defaultStatus string) {
	cmd.Flags().StringVar(&f.name, "name", "", "Lead name")
	cmd.Flags().StringVar(&f.email, "email", "", "Lead email")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Lead phone")
	cmd.Flags().StringVar(&f.status, "status", defaultStatus, "Status: New, In Progress or Converted")
}

func (f leadFlags) input() (models.LeadInput, error) {
	in := models.LeadInput{Name: f.name, Email: f.email, Phone: f.phone}
	if f.status != "" {
		st, err := models.ParseStatus(f.status)
		if err != nil {
			return in, err
		}
		in.Status = st
	}
	return in, nil
}

func newAddCmd(app *App) *cobra.Command {
	var flags leadFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}

			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			tok, err := app.token(st)
			if err != nil {
				return err
			}

			lead, err := app.client().CreateLead(cmd.Context(), tok, in)
			if err != nil {
				return backendError(st, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added lead %s (%s)\n", lead.ID, lead.Name)
			return nil
		},
	}

	flags.register(cmd, string(models.StatusNew))
	return cmd
}

func newUpdateCmd(app *App) *cobra.Command {
	var flags leadFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a lead; fields left unset keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}
			if in.IsZero() {
				return serr.New("nothing to update: pass at least one of --name, --email, --phone, --status")
			}

			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			tok, err := app.token(st)
			if err != nil {
				return err
			}

			lead, err := app.client().UpdateLead(cmd.Context(), tok, models.LeadID(args[0]), in)
			if err != nil {
				return backendError(st, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated lead %s (%s, %s)\n", lead.ID, lead.Name, lead.Status)
			return nil
		},
	}

	flags.register(cmd, "")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lead",
		Args:  cobra.ExactArgs(1),
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

			if err := app.client().DeleteLead(cmd.Context(), tok, models.LeadID(args[0])); err != nil {
				return backendError(st, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lead %s\n", args[0])
			return nil
		},
	}
}

func statusColor(st models.Status) *color.Color {
	switch st {
	case models.StatusNew:
		return color.New(color.FgCyan)
	case models.StatusInProgress:
		return color.New(color.FgYellow)
	case models.StatusConverted:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}

func writeTable(w io.Writer, snap leads.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tSTATUS")
	for _, row := range snap.Rows {
		l := row.Lead
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Email, l.Phone, statusColor(l.Status).Sprint(l.Status))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s (%d leads)\n", snap.Label, snap.Total)
	return err
}

type pageJSON struct {
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int           `json:"total"`
	Leads []models.Lead `json:"leads"`
}

func writeJSON(w io.Writer, snap leads.Snapshot) error {
	out := pageJSON{Page: snap.Page, Pages: snap.Pages, Total: snap.Total, Leads: []models.Lead{}}
	for _, row := range snap.Rows {
		out.Leads = append(out.Leads, row.Lead)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
