package list

import (
	"leadsweb/models"
	"leadsweb/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// AddForm is the create-lead form. The submit button is disabled while a create is pending.
type AddForm struct {
	Values models.LeadInput
	Adding bool
}

// Render implements the element.Component interface
func (f AddForm) Render(b *element.Builder) any {
	status := f.Values.Status
	if status == "" {
		status = models.StatusNew
	}

	submit := []string{"type", "submit", "id", "add-submit", "class", "btn btn-primary"}
	if f.Adding {
		submit = append(submit, "disabled", "disabled")
	}

	b.Form("id", "add", "class", "add-form", "method", "post", "action", "/leads/create").R(
		b.Input("id", "name", "name", "name", "class", "form-input", "placeholder", "Name",
			"required", "required", "value", shared.Esc(f.Values.Name)),
		b.Input("id", "lemail", "name", "email", "type", "email", "class", "form-input", "placeholder", "Email",
			"required", "required", "value", shared.Esc(f.Values.Email)),
		b.Input("id", "phone", "name", "phone", "class", "form-input", "placeholder", "Phone",
			"required", "required", "value", shared.Esc(f.Values.Phone)),
		StatusSelect{ID: "status", Class: "form-input", Selected: status}.Render(b),
		b.Button(submit...).T("Add"),
	)
	return nil
}
