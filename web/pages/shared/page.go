// Package shared contains components used by more than one page.
package shared

import "github.com/rohanthewiz/element"

// Page carries what every page shares. Embed it to get the head, banner and footer.
type Page struct {
	Title string
}

// Head renders the document head
func (p Page) Head(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(Esc(p.Title)),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
	)
}

// Banner returns the page header. Subject is the signed-in user, empty on the login page.
func (p Page) Banner(subject string) Banner {
	return Banner{Title: p.Title, Subject: subject}
}

// Footer returns the page footer
func (p Page) Footer() Footer {
	return Footer{}
}
