package poller

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the client-side memory of one polling run: which deliveries were
// already surfaced and which the partner turned down locally.
type Session struct {
	ID string

	mu       sync.Mutex
	seen     map[int64]struct{}
	rejected map[int64]struct{}
	primed   bool
}

// NewSession starts a session with a fresh id.
func NewSession() *Session {
	return &Session{
		ID:       uuid.NewString(),
		seen:     make(map[int64]struct{}),
		rejected: make(map[int64]struct{}),
	}
}

// Diff records items as seen and returns those never seen before in this
// session. The first call only primes the session and returns nothing, so a
// backlog present at startup does not trigger alerts.
func (s *Session) Diff(items []Item) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []Item
	for _, it := range items {
		if _, ok := s.seen[it.DeliveryID]; ok {
			continue
		}
		s.seen[it.DeliveryID] = struct{}{}
		fresh = append(fresh, it)
	}
	if !s.primed {
		s.primed = true
		return nil
	}
	return fresh
}

// MarkRejected suppresses a delivery for the rest of the session.
func (s *Session) MarkRejected(deliveryID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejected[deliveryID] = struct{}{}
}

// Visible drops locally rejected deliveries.
func (s *Session) Visible(items []Item) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := s.rejected[it.DeliveryID]; ok {
			continue
		}
		out = append(out, it)
	}
	return out
}
