package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryRejections is a process-local rejection store used when redis is not
// configured. Entries expire ttl after they were added.
type MemoryRejections struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[int64]map[int64]time.Time
}

// NewMemoryRejections creates a MemoryRejections. A non-positive ttl keeps entries forever.
func NewMemoryRejections(ttl time.Duration) *MemoryRejections {
	return &MemoryRejections{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[int64]map[int64]time.Time),
	}
}

// Add records that partnerID rejected deliveryID.
func (m *MemoryRejections) Add(_ context.Context, partnerID, deliveryID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.items[partnerID]
	if !ok {
		set = make(map[int64]time.Time)
		m.items[partnerID] = set
	}
	set[deliveryID] = m.now()
	return nil
}

// Rejected returns the live rejections of partnerID and drops expired ones.
func (m *MemoryRejections) Rejected(_ context.Context, partnerID int64) (map[int64]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.items[partnerID]
	out := make(map[int64]struct{}, len(set))
	now := m.now()
	for id, at := range set {
		if m.ttl > 0 && now.Sub(at) >= m.ttl {
			delete(set, id)
			continue
		}
		out[id] = struct{}{}
	}
	if len(set) == 0 {
		delete(m.items, partnerID)
	}
	return out, nil
}
