// Package registry tracks in-flight debate sessions by id.
package registry

import (
	"sync"

	"github.com/symposium-labs/symposium/debate"
)

// Session pairs a moderator with its debate context for the session's
// lifetime.
type Session struct {
	Moderator *debate.Moderator
	Context   *debate.Context
}

var (
	sessions    = make(map[string]*Session)
	sessionLock sync.RWMutex
)

// Register adds a session under its debate id.
func Register(debateID string, s *Session) {
	sessionLock.Lock()
	defer sessionLock.Unlock()
	sessions[debateID] = s
}

// Get returns the session for a debate id, if present.
func Get(debateID string) (*Session, bool) {
	sessionLock.RLock()
	defer sessionLock.RUnlock()
	s, ok := sessions[debateID]
	return s, ok
}

// Remove drops a finished session.
func Remove(debateID string) {
	sessionLock.Lock()
	defer sessionLock.Unlock()
	delete(sessions, debateID)
}

// ActiveIDs lists all registered debate ids.
func ActiveIDs() []string {
	sessionLock.RLock()
	defer sessionLock.RUnlock()
	ids := make([]string, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	return ids
}
