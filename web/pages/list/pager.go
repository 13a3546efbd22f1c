package list

import "github.com/rohanthewiz/element"

// Pager shows the page label between Prev and Next. A control is disabled at its bound.
type Pager struct {
	Label   string
	HasPrev bool
	HasNext bool
}

// Render implements the element.Component interface
func (p Pager) Render(b *element.Builder) any {
	b.DivClass("pager").R(
		b.Form("method", "post", "action", "/leads/prev", "class", "inline").R(
			b.Button(pagerAttrs("prev", p.HasPrev)...).T("Prev"),
		),
		b.Span("id", "page", "class", "pager-label").T(p.Label),
		b.Form("method", "post", "action", "/leads/next", "class", "inline").R(
			b.Button(pagerAttrs("next", p.HasNext)...).T("Next"),
		),
	)
	return nil
}

func pagerAttrs(id string, enabled bool) []string {
	attrs := []string{"type", "submit", "id", id, "class", "btn btn-secondary"}
	if !enabled {
		attrs = append(attrs, "disabled", "disabled")
	}
	return attrs
}
