package web

import (
	"testing"
	"time"

	"leadsweb/leadsapi"
)

func TestSessionsIsolateViews(t *testing.T) {
	s := NewSessions()
	api := leadsapi.New("http://localhost:0")

	a := s.View("a", api)
	b := s.View("b", api)
	if a == b {
		t.Fatal("different sessions must get different views")
	}
	if s.View("a", api) != a {
		t.Error("same session must get the same view")
	}

	_ = a.Store().Set("token-a")
	if tok, _ := b.Store().Get(); tok != "" {
		t.Errorf("sessions share a token: %q", tok)
	}
}

func TestSessionsPruneIdle(t *testing.T) {
	now := time.Now()
	s := NewSessions()
	s.now = func() time.Time { return now }
	api := leadsapi.New("http://localhost:0")

	s.View("old", api)
	now = now.Add(idleTimeout + time.Minute)
	s.View("new", api)

	if s.Len() != 1 {
		t.Errorf("expected idle session pruned, have %d sessions", s.Len())
	}
}
