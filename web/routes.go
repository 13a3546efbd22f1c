package web

import (
	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures every page route
func setupRoutes(s *rweb.Server, app *App) {
	s.Get("/", func(c rweb.Context) error {
		return redirect(c, "/login")
	})

	s.Get("/login", app.LoginPage)
	s.Post("/login", app.Login)
	s.Post("/logout", app.Logout)

	// Both entry points the browser pages used
	s.Get("/leads", app.ListPage)
	s.Get("/leads.html", app.ListPage)

	s.Post("/leads/prev", app.Prev)
	s.Post("/leads/next", app.Next)
	s.Post("/leads/create", app.Create)

	s.Post("/leads/:id/edit", app.Edit)
	s.Post("/leads/:id/save", app.Save)
	s.Post("/leads/:id/cancel", app.Cancel)
	s.Post("/leads/:id/delete", app.Delete)
}
