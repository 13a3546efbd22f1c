package web

import (
	"leadsweb/leads"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// NewServer creates the rweb server for the leads front end.
// api is shared by every browser session; each session gets its own view.
func NewServer(opts rweb.ServerOptions, api leads.API) *rweb.Server {
	s := rweb.NewServer(opts)

	app := &App{api: api, sessions: NewSessions()}

	s.Use(rweb.RequestInfo)
	s.Use(SessionMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(LoggingMiddleware)

	setupRoutes(s, app)
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, addr string) error {
	logger.Info("Leads web front end starting", "address", addr)
	return s.Run()
}
