// Package list renders the leads list page: banner, notice, table, pager and create form.
package list

import (
	"leadsweb/leads"
	"leadsweb/models"
	"leadsweb/web/pages/comps"
	"leadsweb/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Page is the leads list page for one view snapshot
type Page struct {
	shared.Page
	Subject string           // signed-in user, from the token claims
	View    leads.Snapshot   // rows, pager state, notice, create guard
	Form    models.LeadInput // create form values to refill after a failed add
}

// NewPage creates the list page for a snapshot
func NewPage(subject string, snap leads.Snapshot, form models.LeadInput) Page {
	return Page{
		Page:    shared.Page{Title: "Leads"},
		Subject: subject,
		View:    snap,
		Form:    form,
	}
}

// Render generates the complete HTML for the list page
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.Head(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		b.Div("class", "app-container", "id", "app").R(
			element.RenderComponents(b, p.Banner(p.Subject)),

			b.Main("class", "app-main").R(
				element.RenderComponents(b,
					comps.Notice{ID: "msg", Text: p.View.Notice},
					Table{Rows: p.View.Rows},
					Pager{Label: p.View.Label, HasPrev: p.View.HasPrev, HasNext: p.View.HasNext},
					comps.Heading{Title: "Add lead"},
					AddForm{Values: p.Form, Adding: p.View.Adding},
				),
			),

			element.RenderComponents(b, p.Footer()),
		),
	)
}
