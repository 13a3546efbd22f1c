package cli

import (
	"leadsweb/web"

	"github.com/rohanthewiz/rweb"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.cfg.ListenAddr
			}
			srv := web.NewServer(rweb.ServerOptions{
				Address: addr,
				Verbose: app.cfg.LogLevel == "debug",
			}, app.client())
			return web.Run(srv, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config and LEADS_LISTEN_ADDR)")
	return cmd
}
