// Package ai invokes external reasoning agents: an OpenAI-backed client for
// live debates, with optional web-research evidence enrichment, and a
// deterministic mock for offline runs and tests.
package ai

import (
	"context"

	"github.com/symposium-labs/symposium/core"
)

// Response is the raw payload an agent returns for one round. Confidence 0
// means the agent omitted one; the moderator applies the default.
type Response struct {
	Text       string   `json:"text"`
	Evidence   []string `json:"evidence,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// Invoker is the external agent-invocation contract the moderator consumes.
// An implementation may fail with a transport or timeout error; the
// moderator treats any error like a non-response for that round.
type Invoker interface {
	Invoke(ctx context.Context, roleID, prompt string, session core.SessionStore) (Response, error)
}

// AgentSpec describes one roster entry: the role identity plus the persona
// traits folded into its prompts.
type AgentSpec struct {
	RoleID  string
	Name    string
	Traits  []string
	Stance  string // e.g. "optimistic", "critical", "neutral"
	Backend string // resolved model backend id, informational
}
