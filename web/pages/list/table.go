package list

import (
	"leadsweb/leads"
	"leadsweb/models"
	"leadsweb/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Table renders one row per lead, keyed by data-id.
// Rows in edit mode show inputs filled from their draft.
type Table struct {
	Rows []leads.Row
}

// Render implements the element.Component interface
func (t Table) Render(b *element.Builder) any {
	b.Table("id", "t", "class", "leads-table").R(
		b.Tr().R(
			b.Th().T("Name"),
			b.Th().T("Email"),
			b.Th().T("Phone"),
			b.Th().T("Status"),
			b.Th().T("Actions"),
		),
		func() (x any) {
			for _, row := range t.Rows {
				if row.Editing() {
					editRow(b, row)
				} else {
					displayRow(b, row.Lead)
				}
			}
			return
		}(),
	)
	return nil
}

func displayRow(b *element.Builder, l models.Lead) {
	id := shared.Esc(l.ID.String())
	action := "/leads/" + id

	b.Tr("data-id", id).R(
		b.Td().T(shared.Esc(l.Name)),
		b.Td().T(shared.Esc(l.Email)),
		b.Td().T(shared.Esc(l.Phone)),
		b.Td().T(shared.Esc(string(l.Status))),
		b.Td("class", "row-actions").R(
			b.Form("method", "post", "action", action+"/edit", "class", "inline").R(
				b.Button("type", "submit", "class", "edit btn btn-warn", "data-id", id).T("Edit"),
			),
			b.Form("method", "post", "action", action+"/delete", "class", "inline").R(
				b.Button("type", "submit", "class", "del btn btn-danger", "data-id", id).T("Delete"),
			),
		),
	)
}

// editRow puts every input in a form owned by the Save button via the form attribute
func editRow(b *element.Builder, row leads.Row) {
	id := shared.Esc(row.Lead.ID.String())
	formID := "edit-" + id
	action := "/leads/" + id

	b.Tr("data-id", id, "class", "editing").R(
		b.Td().R(
			b.Input("class", "e-name form-input", "name", "name", "form", formID, "value", shared.Esc(row.Draft.Name)),
		),
		b.Td().R(
			b.Input("class", "e-email form-input", "type", "email", "name", "email", "form", formID, "value", shared.Esc(row.Draft.Email)),
		),
		b.Td().R(
			b.Input("class", "e-phone form-input", "name", "phone", "form", formID, "value", shared.Esc(row.Draft.Phone)),
		),
		b.Td().R(
			StatusSelect{Class: "e-status form-input", Form: formID, Selected: row.Draft.Status}.Render(b),
		),
		b.Td("class", "row-actions").R(
			b.Form("method", "post", "action", action+"/save", "id", formID, "class", "inline").R(
				b.Button("type", "submit", "class", "save btn btn-primary", "data-id", id).T("Save"),
			),
			b.Form("method", "post", "action", action+"/cancel", "class", "inline").R(
				b.Button("type", "submit", "class", "cancel btn btn-secondary", "data-id", id).T("Cancel"),
			),
		),
	)
}

// StatusSelect is the three-option status selector
type StatusSelect struct {
	ID       string
	Class    string
	Form     string
	Selected models.Status
}

// Render implements the element.Component interface
func (s StatusSelect) Render(b *element.Builder) any {
	attrs := []string{"name", "status", "class", s.Class}
	if s.ID != "" {
		attrs = append(attrs, "id", s.ID)
	}
	if s.Form != "" {
		attrs = append(attrs, "form", s.Form)
	}

	b.Select(attrs...).R(
		func() (x any) {
			for _, st := range models.Statuses() {
				opt := []string{"value", string(st)}
				if st == s.Selected {
					opt = append(opt, "selected", "selected")
				}
				b.Option(opt...).T(string(st))
			}
			return
		}(),
	)
	return nil
}
