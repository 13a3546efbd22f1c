package web

import (
	"sync"
	"time"

	"leadsweb/leads"
	"leadsweb/session"

	"github.com/rohanthewiz/logger"
)

// idleTimeout is how long an untouched browser session keeps its view
const idleTimeout = 12 * time.Hour

type sessionEntry struct {
	view     *leads.View
	lastSeen time.Time
}

// Sessions maps browser session ids to their view state.
// Each view holds its token in its own memory store, so browsers never share a login.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

// NewSessions returns an empty registry
func NewSessions() *Sessions {
	return &Sessions{
		entries: map[string]*sessionEntry{},
		now:     time.Now,
	}
}

// View returns the view for sessionID, creating it on first use
func (s *Sessions) View(sessionID string, api leads.API) *leads.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[sessionID]; ok {
		e.lastSeen = now
		return e.view
	}

	s.pruneLocked(now)
	v := leads.NewView(api, session.NewMemoryStore())
	s.entries[sessionID] = &sessionEntry{view: v, lastSeen: now}
	return v
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) pruneLocked(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > idleTimeout {
			delete(s.entries, id)
			logger.Debug("Dropped idle browser session", "session_id", id)
		}
	}
}
