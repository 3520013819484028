package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/symposium-labs/symposium/core"
)

// MockInvoker produces deterministic role-flavored responses without any
// network dependency. Used by the CLI's offline mode and by tests.
type MockInvoker struct {
	// Scripts optionally overrides the generated response per role. The
	// script list is consumed round by round; the last entry repeats.
	Scripts map[string][]Response

	// Fail marks roles whose invocation should error, simulating transport
	// failures.
	Fail map[string]bool

	// The moderator invokes every roster agent concurrently against one
	// shared invoker, so the call counters need their own lock.
	mu    sync.Mutex
	calls map[string]int
}

// NewMockInvoker returns an empty mock that generates stance-flavored text.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{calls: make(map[string]int)}
}

func (m *MockInvoker) Invoke(ctx context.Context, roleID, prompt string, session core.SessionStore) (Response, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	call := m.calls[roleID]
	m.calls[roleID]++
	m.mu.Unlock()

	if m.Fail[roleID] {
		return Response{}, fmt.Errorf("%w: %s: simulated transport failure", core.ErrAgentUnavailable, roleID)
	}

	if scripts, ok := m.Scripts[roleID]; ok && len(scripts) > 0 {
		if call >= len(scripts) {
			call = len(scripts) - 1
		}
		return scripts[call], nil
	}

	return mockResponse(roleID, prompt), nil
}

// mockResponse generates a deterministic argument whose tone follows the
// role name, so offline debates still exercise the conflict and bias
// heuristics.
func mockResponse(roleID, prompt string) Response {
	question := "the question under debate"
	if q := extractQuestion(prompt); q != "" {
		question = q
	}

	lower := strings.ToLower(roleID)
	switch {
	case strings.Contains(lower, "pessimist") || strings.Contains(lower, "critic"):
		return Response{
			Text: fmt.Sprintf("I disagree with the optimistic reading of %s. "+
				"However, the limited data we have suggests the downside risks dominate the expected outcome.", question),
			Evidence:   []string{"risk_register", "historical_failure_rates"},
			Confidence: 0.6,
		}
	case strings.Contains(lower, "optimist"):
		return Response{
			Text: fmt.Sprintf("The data validates a positive outlook on %s. "+
				"Sustained growth in the underlying indicators supports continued investment in this direction.", question),
			Evidence:   []string{"growth_metrics", "adoption_curve"},
			Confidence: 0.8,
		}
	case strings.Contains(lower, "ethic"):
		return Response{
			Text: fmt.Sprintf("From a fairness standpoint, %s must be weighed against its impact on affected groups. "+
				"Although the aggregate numbers look sound, distributional effects deserve separate scrutiny.", question),
			Evidence:   []string{"fairness_audit"},
			Confidence: 0.7,
		}
	default:
		return Response{
			Text: fmt.Sprintf("Considering %s, the available records point to a moderate effect. "+
				"The balance of evidence favors a cautious but affirmative conclusion.", question),
			Evidence:   []string{"query_result_summary"},
			Confidence: 0.7,
		}
	}
}
