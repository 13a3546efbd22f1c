// Package cli is the leadsweb command line: the web and terminal front ends
// plus one-shot commands for scripting against the leads backend.
package cli

import (
	"os"
	"strings"

	"leadsweb/leadsapi"
	"leadsweb/models"
	"leadsweb/session"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath     string
	APIBaseURL     string
	SessionPath    string
	SessionBackend string

	cfg *models.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "leadsweb",
		Short:        "Client for the leads backend: web UI, terminal UI and scriptable commands",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the web front end on :8000
  leadsweb serve

  # Interactive terminal UI
  leadsweb tui

  # Scriptable commands
  leadsweb login --email test@example.com --password password123
  leadsweb list --page 2
  leadsweb add --name Carol --email carol@example.com --phone 555
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.loadConfig()
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("LEADS_CONFIG", ""), "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&app.APIBaseURL, "api", "", "Backend base URL (overrides config and LEADS_API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&app.SessionPath, "session", "", "Session store path (overrides config and LEADS_SESSION_PATH)")
	cmd.PersistentFlags().StringVar(&app.SessionBackend, "session-backend", "", "Session store backend: file or duckdb")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newUpdateCmd(app))
	cmd.AddCommand(newDeleteCmd(app))

	return cmd
}

// loadConfig layers flags over the config file and environment
func (app *App) loadConfig() error {
	cfg, err := models.LoadConfig(app.ConfigPath)
	if err != nil {
		return err
	}

	if app.APIBaseURL != "" {
		cfg.APIBaseURL = app.APIBaseURL
	}
	if app.SessionBackend != "" {
		cfg.SessionBackend = app.SessionBackend
	}
	if app.SessionPath != "" {
		cfg.SessionPath = app.SessionPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.SetLogLevel(cfg.LogLevel)
	app.cfg = cfg
	return nil
}

func (app *App) client() *leadsapi.Client {
	return leadsapi.New(app.cfg.APIBaseURL, leadsapi.WithTimeout(app.cfg.RequestTimeout))
}

// openStore opens the configured session store; call the returned func when done
func (app *App) openStore() (session.Store, func(), error) {
	switch app.cfg.SessionBackend {
	case models.SessionBackendDuckDB:
		st, err := session.OpenDBStore(app.cfg.SessionPath)
		if err != nil {
			return nil, nil, serr.Wrap(err, "failed to open session database")
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logger.LogErr(err, "failed to close session database")
			}
		}, nil
	default:
		return session.NewFileStore(app.cfg.SessionPath), func() {}, nil
	}
}

// token returns the stored token or errNotLoggedIn
func (app *App) token(st session.Store) (string, error) {
	tok, err := st.Get()
	if err != nil {
		return "", serr.Wrap(err, "failed to read session")
	}
	if tok == "" {
		return "", errNotLoggedIn
	}
	return tok, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
