package sessions

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps conversation buffers in process memory, one per user id.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]*memSession
}

type memSession struct {
	meta     Session
	messages []Message
}

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]*memSession)}
}

// Create registers a new session under a fresh UUID.
func (m *MemStore) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &memSession{
		meta: Session{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	m.sessions[s.meta.ID] = s

	meta := s.meta
	return &meta, nil
}

// Get returns session metadata by id.
func (m *MemStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	meta := s.meta
	return &meta, nil
}

// List returns all sessions sorted by UpdatedAt descending.
func (m *MemStore) List() ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		meta := s.meta
		out = append(out, &meta)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Append adds a message to a session's buffer.
func (m *MemStore) Append(id string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if msg.Ts.IsZero() {
		msg.Ts = time.Now()
	}
	s.messages = append(s.messages, msg)
	s.meta.MessageCount = len(s.messages)
	s.meta.UpdatedAt = msg.Ts
	return nil
}

// History returns a copy of a session's buffer in chronological order.
func (m *MemStore) History(id string) ([]Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}
