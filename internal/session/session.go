// Package session tracks anonymous visitor sessions and the in-memory form
// state behind the two modal workflows.
//
// There is deliberately no persistence: a session is a uuid cookie pointing
// at an in-memory entry, and an entry holds at most one form per flow. When
// the TTL expires or the process restarts, the visitor simply starts the
// modal over.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freshlaundry/website/internal/intake"
)

const (
	// CookieName is the name of the cookie that stores the session id.
	CookieName = "freshlaundry_session"

	// CookiePath ensures the cookie is sent with all requests.
	CookiePath = "/"

	// CookieMaxAge sets the cookie expiration (1 day). Far longer than any
	// form interaction; the store's TTL is the real bound.
	CookieMaxAge = 24 * 60 * 60
)

// =============================================================================
// Store
// =============================================================================

// Store holds per-visitor form state with a sliding TTL. Safe for concurrent
// use by request handlers.
type Store struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	forms    map[string]*intake.Form // keyed by flow name
	lastSeen time.Time
}

// NewStore creates a session store and starts its background sweeper.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		ttl:     ttl,
		entries: make(map[string]*entry),
	}

	go s.sweep()

	return s
}

// Form returns the visitor's form for the given flow, creating a fresh one
// on first access. Touching a session slides its expiry.
func (s *Store) Form(sessionID string, flow intake.Flow) *intake.Form {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[sessionID]
	if !exists {
		e = &entry{forms: make(map[string]*intake.Form)}
		s.entries[sessionID] = e
	}
	e.lastSeen = time.Now()

	f, exists := e.forms[flow.Name]
	if !exists {
		f = intake.NewForm(flow)
		e.forms[flow.Name] = f
	}
	return f
}

// Drop discards the visitor's form for one flow. Dropping the last form
// removes the session entry entirely.
func (s *Store) Drop(sessionID, flowName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[sessionID]
	if !exists {
		return
	}
	delete(e.forms, flowName)
	if len(e.forms) == 0 {
		delete(s.entries, sessionID)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweep periodically removes sessions that haven't been touched within the
// TTL.
func (s *Store) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		cutoff := time.Now().Add(-s.ttl)
		for id, e := range s.entries {
			if e.lastSeen.Before(cutoff) {
				delete(s.entries, id)
			}
		}
		s.mu.Unlock()
	}
}

// =============================================================================
// Cookie helpers
// =============================================================================

// EnsureID returns the visitor's session id, minting a new one and setting
// the cookie when the request doesn't carry a usable id.
func EnsureID(w http.ResponseWriter, r *http.Request, isSecure bool) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     CookiePath,
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// IDFromRequest returns the session id carried by the request, or empty.
func IDFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
