package core

import "errors"

var (
	// ErrInvalidConfiguration covers empty rosters and malformed weights.
	// Fatal, raised at initiation.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrAgentUnavailable marks a single agent invocation failure. Recovered
	// locally: the agent is skipped for the round.
	ErrAgentUnavailable = errors.New("agent unavailable")

	// ErrDebateStalled means zero agents responded in a round. Fatal.
	ErrDebateStalled = errors.New("debate stalled: no agents responded")

	// ErrRoutingExhausted means no backend met the capability/budget
	// constraints and the fallback chain ran out. Recovered by returning the
	// universal fallback; never fatal.
	ErrRoutingExhausted = errors.New("routing exhausted")
)
