package shared

import "html"

// Esc escapes text and attribute values; element writes them as given.
func Esc(s string) string {
	return html.EscapeString(s)
}
