package comps

import (
	"leadsweb/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Notice is the status line under the banner. Empty text renders an empty container.
type Notice struct {
	ID   string
	Text string
}

func (n Notice) Render(b *element.Builder) (x any) {
	class := "notice"
	if n.Text == "" {
		class += " hidden"
	}
	b.Div("class", class, "id", n.ID).T(shared.Esc(n.Text))
	return
}
