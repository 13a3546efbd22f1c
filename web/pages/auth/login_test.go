package auth

import (
	"strings"
	"testing"
)

func TestLoginPage(t *testing.T) {
	t.Run("Blank", func(t *testing.T) {
		html := NewLoginPage("", "").Render()
		for _, want := range []string{`action="/login"`, `name="email"`, `name="password"`, "Login"} {
			if !strings.Contains(html, want) {
				t.Errorf("expected %s in login page", want)
			}
		}
		if !strings.Contains(html, "notice hidden") {
			t.Error("message container should be hidden without a message")
		}
	})

	t.Run("WithMessage", func(t *testing.T) {
		html := NewLoginPage("Invalid email or password", "a@b.c").Render()
		if !strings.Contains(html, "Invalid email or password") {
			t.Error("expected inline message")
		}
		if !strings.Contains(html, `value="a@b.c"`) {
			t.Error("expected email to be refilled")
		}
	})
}
