package core

import (
	"sort"
	"sync"
)

// DebateLog is the append-only record of a debate session and the only
// shared mutable resource in the system. Appends may arrive in any
// completion order within a round; readers always receive a copy sorted by
// (round_number, timestamp).
type DebateLog struct {
	mu      sync.RWMutex
	entries []DebateArgument
}

// NewDebateLog returns an empty log.
func NewDebateLog() *DebateLog {
	return &DebateLog{}
}

// Append adds an argument to the log. Safe for concurrent use; this is the
// single serialization point for per-agent completions within a round.
func (l *DebateLog) Append(arg DebateArgument) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, arg)
}

// Entries returns a sorted copy of the full log.
func (l *DebateLog) Entries() []DebateArgument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]DebateArgument, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RoundNumber != out[j].RoundNumber {
			return out[i].RoundNumber < out[j].RoundNumber
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Len returns the number of entries.
func (l *DebateLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Reset discards all entries. Called once at debate initiation, never
// mid-session.
func (l *DebateLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
