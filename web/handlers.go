package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"leadsweb/leads"
	"leadsweb/models"
	"leadsweb/web/pages/auth"
	"leadsweb/web/pages/list"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// App holds what the page handlers share
type App struct {
	api      leads.API
	sessions *Sessions
}

// view returns the leads view of the requesting browser session
func (a *App) view(c rweb.Context) *leads.View {
	id, _ := c.Get("session_id").(string)
	return a.sessions.View(id, a.api)
}

// LoginPage renders the empty login form
func (a *App) LoginPage(c rweb.Context) error {
	return writePage(c, auth.NewLoginPage("", "").Render())
}

// Login exchanges the posted credentials for a token
func (a *App) Login(c rweb.Context) error {
	form := parseForm(c)
	email := form.Get("email")

	v := a.view(c)
	res := leads.Login(requestContext(), a.api, v.Store(), email, form.Get("password"))
	if res.Nav == leads.NavList {
		v.SetPage(1)
		return redirect(c, "/leads")
	}
	return writePage(c, auth.NewLoginPage(res.Message, email).Render())
}

// Logout clears the session's token
func (a *App) Logout(c rweb.Context) error {
	return a.respond(c, a.view(c).Logout(), models.LeadInput{})
}

// ListPage loads the current page and renders it
func (a *App) ListPage(c rweb.Context) error {
	v := a.view(c)
	return a.respond(c, v.Load(requestContext()), models.LeadInput{})
}

// Prev moves one page back
func (a *App) Prev(c rweb.Context) error {
	return a.respond(c, a.view(c).Prev(requestContext()), models.LeadInput{})
}

// Next moves one page forward
func (a *App) Next(c rweb.Context) error {
	return a.respond(c, a.view(c).Next(requestContext()), models.LeadInput{})
}

// Edit switches a row to its inputs without contacting the backend
func (a *App) Edit(c rweb.Context) error {
	v := a.view(c)
	if v.Token() == "" {
		return redirect(c, "/login")
	}
	v.Edit(leadID(c))
	return a.respond(c, leads.Result{}, models.LeadInput{})
}

// Save sends the posted row values as the full record.
// The form carries every field, so the save goes through even when this
// session's view has since reloaded the row out of edit mode.
func (a *App) Save(c rweb.Context) error {
	res := a.view(c).SaveInput(requestContext(), leadID(c), formInput(parseForm(c)))
	return a.respond(c, res, models.LeadInput{})
}

// Cancel reloads the page, dropping the row's draft
func (a *App) Cancel(c rweb.Context) error {
	return a.respond(c, a.view(c).Cancel(requestContext(), leadID(c)), models.LeadInput{})
}

// Delete removes a lead without confirmation
func (a *App) Delete(c rweb.Context) error {
	return a.respond(c, a.view(c).Delete(requestContext(), leadID(c)), models.LeadInput{})
}

// Create adds a lead from the create form
func (a *App) Create(c rweb.Context) error {
	in := formInput(parseForm(c))

	res, err := a.view(c).Create(requestContext(), in)
	switch {
	case errors.Is(err, leads.ErrCreateInFlight):
		logger.Debug("Ignoring create while another is pending")
		return a.respond(c, res, in)
	case err != nil:
		// keep what was typed so the user can retry
		return a.respond(c, res, in)
	}
	return a.respond(c, res, models.LeadInput{})
}

// respond follows a navigation result or renders the list page
func (a *App) respond(c rweb.Context, res leads.Result, form models.LeadInput) error {
	switch res.Nav {
	case leads.NavLogin:
		return redirect(c, "/login")
	case leads.NavList:
		return redirect(c, "/leads")
	}

	v := a.view(c)
	subject := ""
	if info, err := models.ParseTokenInfo(v.Token()); err == nil {
		subject = info.Subject
	}
	return writePage(c, list.NewPage(subject, v.Snapshot(), form).Render())
}

func writePage(c rweb.Context, html string) error {
	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(html)
}

func redirect(c rweb.Context, to string) error {
	c.Response().SetHeader("Location", to)
	c.SetStatus(http.StatusSeeOther)
	return nil
}

func leadID(c rweb.Context) models.LeadID {
	return models.LeadID(c.Request().Param("id"))
}

// parseForm decodes an application/x-www-form-urlencoded body
func parseForm(c rweb.Context) url.Values {
	form, err := url.ParseQuery(string(c.Request().Body()))
	if err != nil {
		logger.LogErr(err, "Failed to parse form body", "path", c.Request().Path())
		return url.Values{}
	}
	return form
}

// formInput reads lead fields as typed; the backend validates them
func formInput(form url.Values) models.LeadInput {
	return models.LeadInput{
		Name:   strings.TrimSpace(form.Get("name")),
		Email:  strings.TrimSpace(form.Get("email")),
		Phone:  strings.TrimSpace(form.Get("phone")),
		Status: models.Status(form.Get("status")),
	}
}

// requestContext bounds backend calls made on behalf of a page request.
// The client's own timeout applies; rweb does not expose a request context.
func requestContext() context.Context {
	return context.Background()
}
