package shared

import "github.com/rohanthewiz/element"

// Footer is the page footer
type Footer struct{}

func (f Footer) Render(b *element.Builder) any {
	b.Footer("class", "page-footer").R(
		b.P().T("leadsweb"),
	)
	return nil
}
