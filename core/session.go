package core

import "sync"

// SessionStore passes intermediate outputs between debate stages. Keys are
// unique and scoped to one debate session; the core only relies on
// get/set/contains semantics, not on any persistence technology.
type SessionStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Contains(key string) bool
}

// Well-known session keys.
const (
	SessionKeyQuestion       = "question"
	SessionKeyDataset        = "dataset"
	SessionKeyMetricsHistory = "metrics_history"
	SessionKeyLastRound      = "last_round"
)

// MemorySessionStore is the default in-process SessionStore.
type MemorySessionStore struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// NewMemorySessionStore returns an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{values: make(map[string]interface{})}
}

func (s *MemorySessionStore) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemorySessionStore) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemorySessionStore) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}
