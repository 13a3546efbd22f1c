package cli

import (
	"leadsweb/leads"
	"leadsweb/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, done, err := app.openStore()
			if err != nil {
				return err
			}
			defer done()

			client := app.client()
			return tui.Run(cmd.Context(), client, leads.NewView(client, st))
		},
	}
}
