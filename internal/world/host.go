package world

import "sync"

// Host serialises access to a session shared between goroutines. The
// session itself is not safe for concurrent use.
type Host struct {
	mu      sync.Mutex
	session *Session
}

func NewHost(s *Session) *Host {
	return &Host{session: s}
}

// Do runs fn with exclusive access to the session.
func (h *Host) Do(fn func(*Session) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.session == nil {
		return ErrNoSession
	}
	return fn(h.session)
}

// Replace swaps in a new session, e.g. after a load.
func (h *Host) Replace(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.session = s
}
