package auth

import (
	"leadsweb/web/pages/comps"
	"leadsweb/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// LoginPage represents the login page
type LoginPage struct {
	shared.Page
	Message string // inline error shown above the form
	Email   string // refilled after a failed attempt
}

// NewLoginPage creates a login page showing msg
func NewLoginPage(msg, email string) LoginPage {
	return LoginPage{
		Page:    shared.Page{Title: "Leads - Login"},
		Message: msg,
		Email:   email,
	}
}

// Render generates the HTML for the login page
func (p LoginPage) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p LoginPage) renderBody(b *element.Builder) any {
	return b.Body().R(
		b.DivClass("auth-container").R(
			b.DivClass("auth-card").R(
				b.H2Class("auth-title").T("Sign in"),

				element.RenderComponents(b, comps.Notice{ID: "msg", Text: p.Message}),

				b.Form("class", "auth-form", "id", "login-form", "method", "post", "action", "/login").R(
					b.DivClass("form-group").R(
						b.LabelClass("form-label", "for", "email").T("Email"),
						b.Input("type", "email", "class", "form-input", "id", "email",
							"name", "email", "required", "required", "autocomplete", "username",
							"value", shared.Esc(p.Email)),
					),
					b.DivClass("form-group").R(
						b.LabelClass("form-label", "for", "password").T("Password"),
						b.Input("type", "password", "class", "form-input", "id", "password",
							"name", "password", "required", "required", "autocomplete", "current-password"),
					),
					b.Button("type", "submit", "class", "auth-submit", "id", "submit-btn").T("Login"),
				),
			),
		),
	)
}
