package shared

import "github.com/rohanthewiz/element"

// Banner is the top bar with the app name and, when signed in, a logout control
type Banner struct {
	Title   string
	Subject string
}

func (bn Banner) Render(b *element.Builder) any {
	b.HeaderClass("banner").R(
		b.H1Class("banner-title").T(Esc(bn.Title)),
		b.Wrap(func() {
			if bn.Subject == "" {
				return
			}
			b.DivClass("banner-user").R(
				b.SpanClass("banner-subject").T("Signed in as "+Esc(bn.Subject)),
				b.Form("method", "post", "action", "/logout", "class", "inline").R(
					b.Button("type", "submit", "id", "logout", "class", "btn btn-secondary").T("Logout"),
				),
			)
		}),
	)
	return nil
}
