package debate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/core"
)

var (
	agreeingScripts = map[string][]ai.Response{
		"optimist_analyst": {{
			Text:       "The rollout telemetry shows steady adoption across all cohorts of the fleet.",
			Evidence:   []string{"rollout_report", "uptime_stats", "canary_data"},
			Confidence: 0.8,
		}},
		"pessimist_critic": {{
			Text:       "The failure rates stayed flat through the entire observation window as well.",
			Confidence: 0.6,
		}},
	}

	conflictScripts = map[string][]ai.Response{
		"optimist_analyst": {{
			Text:       "The migration plan is safe and the rollout evidence is strong.",
			Evidence:   []string{"rollout_report", "uptime_stats", "canary_data"},
			Confidence: 0.8,
		}},
		"pessimist_critic": {{
			Text:       "I disagree, the migration plan is flawed and the rollback path is untested.",
			Confidence: 0.6,
		}},
	}
)

func testRoster() []ai.AgentSpec {
	return []ai.AgentSpec{
		{RoleID: "optimist_analyst", Name: "Iris", Stance: "optimistic"},
		{RoleID: "pessimist_critic", Name: "Cato", Stance: "critical"},
	}
}

func TestInitiate(t *testing.T) {
	m := NewModerator(ai.NewMockInvoker(), nil, 3, 0)

	t.Run("Empty Roster Rejected", func(t *testing.T) {
		_, err := m.Initiate("q", nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidConfiguration))
	})

	t.Run("Session Seeded", func(t *testing.T) {
		dataset := core.QueryResult{{"amount": 10}}
		dctx, err := m.Initiate("Should we migrate?", testRoster(), dataset)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(dctx.DebateID, "debate_"))
		assert.Equal(t, Initialization, m.Phase())
		assert.Zero(t, m.CurrentRound())
		assert.True(t, dctx.Session.Contains(core.SessionKeyQuestion))
		assert.True(t, dctx.Session.Contains(core.SessionKeyDataset))
	})

	t.Run("Initiate Resets Prior Log", func(t *testing.T) {
		m.log.Append(core.DebateArgument{AgentID: "stale"})
		_, err := m.Initiate("q", testRoster(), nil)
		require.NoError(t, err)
		assert.Zero(t, m.Log().Len())
	})
}

func TestFacilitateRoundConflictMetrics(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = conflictScripts
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("Should we migrate the primary datastore?", testRoster(), nil)
	require.NoError(t, err)

	args, metrics, err := m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	require.Len(t, args, 2)

	assert.Equal(t, OpeningStatements, m.Phase())
	assert.InDelta(t, 10.0, metrics.ConflictIntensity, 1e-9)
	assert.InDelta(t, 1.0-metrics.ConflictIntensity/10.0, metrics.ConsensusLevel, 1e-9)
	assert.InDelta(t, 1.0, metrics.ParticipationBalance, 1e-9)
	// One agent cites 3 sources (saturated), the other none.
	assert.InDelta(t, 0.5, metrics.EvidenceStrength, 1e-9)

	assert.True(t, dctx.Session.Contains(core.SessionKeyLastRound))
	assert.True(t, dctx.Session.Contains(core.SessionKeyMetricsHistory))
}

func TestFacilitateRoundWithoutConflict(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = agreeingScripts
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	_, metrics, err := m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, metrics.ConflictIntensity, 1e-9)
	assert.InDelta(t, 0.9, metrics.ConsensusLevel, 1e-9)
}

func TestFacilitateRoundPhaseProgression(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = conflictScripts
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	_, _, err = m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	assert.Equal(t, OpeningStatements, m.Phase())

	_, _, err = m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	assert.Equal(t, AdversarialExchange, m.Phase())
	assert.Equal(t, 2, m.CurrentRound())
}

func TestFailedAgentIsSkippedNotFatal(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = conflictScripts
	mock.Fail = map[string]bool{"pessimist_critic": true}
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	args, metrics, err := m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, "optimist_analyst", args[0].AgentID)
	assert.InDelta(t, 0.5, metrics.ParticipationBalance, 1e-9)
	// A single respondent cannot disagree with anyone.
	assert.InDelta(t, 1.0, metrics.ConflictIntensity, 1e-9)
}

func TestFullyUnresponsiveRoundIsStalled(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Fail = map[string]bool{"optimist_analyst": true, "pessimist_critic": true}
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	_, _, err = m.FacilitateRound(context.Background(), dctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDebateStalled))
}

// blockingInvoker never answers; it only honors cancellation.
type blockingInvoker struct{}

func (blockingInvoker) Invoke(ctx context.Context, roleID, prompt string, session core.SessionStore) (ai.Response, error) {
	<-ctx.Done()
	return ai.Response{}, ctx.Err()
}

func TestAgentTimeoutSkipsAgent(t *testing.T) {
	m := NewModerator(blockingInvoker{}, nil, 3, 0)
	m.SetAgentTimeout(20 * time.Millisecond)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	start := time.Now()
	_, _, err = m.FacilitateRound(context.Background(), dctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDebateStalled))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestShouldContinue(t *testing.T) {
	m := NewModerator(ai.NewMockInvoker(), nil, 3, 7.0)

	cases := []struct {
		name     string
		round    int
		metrics  core.DebateMetrics
		expected bool
	}{
		{
			name:     "High Conflict Low Consensus Continues",
			round:    1,
			metrics:  core.DebateMetrics{ConflictIntensity: 8.5, ConsensusLevel: 0.15},
			expected: true,
		},
		{
			name:     "Strong Consensus Stops",
			round:    1,
			metrics:  core.DebateMetrics{ConflictIntensity: 1.0, ConsensusLevel: 0.9},
			expected: false,
		},
		{
			name:     "Max Rounds Dominates High Conflict",
			round:    3,
			metrics:  core.DebateMetrics{ConflictIntensity: 10.0, ConsensusLevel: 0.0},
			expected: false,
		},
		{
			name:     "Middling Metrics Continue Below Cap",
			round:    2,
			metrics:  core.DebateMetrics{ConflictIntensity: 5.0, ConsensusLevel: 0.5},
			expected: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m.mu.Lock()
			m.currentRound = tc.round
			m.mu.Unlock()
			assert.Equal(t, tc.expected, m.ShouldContinue(tc.metrics))
		})
	}
}

func TestBuildPromptWindow(t *testing.T) {
	agent := ai.AgentSpec{RoleID: "pessimist_critic", Stance: "critical", Traits: []string{"skeptical"}}

	var prior []core.DebateArgument
	for i := 0; i < 8; i++ {
		prior = append(prior, core.DebateArgument{
			AgentID:  "optimist_analyst",
			Text:     "opponent point " + strings.Repeat("x", i+1),
			Evidence: []string{"e1", "e2", "e3"},
		})
	}
	prior = append(prior, core.DebateArgument{
		AgentID: "pessimist_critic",
		Text:    "my own earlier words",
	})

	prompt := buildPrompt("Is the cache layer worth keeping?", agent, prior)

	assert.Contains(t, prompt, "Question: Is the cache layer worth keeping?")
	assert.Contains(t, prompt, "Your stance: critical.")
	assert.NotContains(t, prompt, "my own earlier words")

	// Only the 6 most recent opponent entries survive the window.
	assert.NotContains(t, prompt, "opponent point xx\n")
	assert.Contains(t, prompt, "opponent point xxx")
	assert.Contains(t, prompt, "opponent point xxxxxxxx")

	// Evidence previews are capped at two citations.
	assert.Contains(t, prompt, "Evidence: e1, e2\n")
	assert.NotContains(t, prompt, "e3")
}

func TestRoundFanOutSharesOneInvoker(t *testing.T) {
	// Every roster agent hits the same invoker from its own goroutine; three
	// rounds over four agents must complete without corrupting its counters.
	mock := ai.NewMockInvoker()
	m := NewModerator(mock, nil, 3, 0)

	roster := []ai.AgentSpec{
		{RoleID: "optimist_analyst"},
		{RoleID: "pessimist_critic"},
		{RoleID: "ethical_auditor"},
		{RoleID: "data_detective"},
	}
	dctx, err := m.Initiate("q", roster, nil)
	require.NoError(t, err)

	for round := 1; round <= 3; round++ {
		args, metrics, err := m.FacilitateRound(context.Background(), dctx)
		require.NoError(t, err)
		assert.Len(t, args, len(roster))
		assert.InDelta(t, 1.0, metrics.ParticipationBalance, 1e-9)
	}
	assert.Equal(t, 3*len(roster), m.Log().Len())
}

func TestConfidenceClampedToContractRange(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = map[string][]ai.Response{
		"optimist_analyst": {{
			Text:       "A statement asserted with an out-of-range confidence value.",
			Confidence: 7,
		}},
		"pessimist_critic": {{
			Text:       "A statement asserted with a negative confidence value somehow.",
			Confidence: -0.5,
		}},
	}
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	args, _, err := m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	require.Len(t, args, 2)
	// Round arguments come back in roster order.
	assert.Equal(t, 1.0, args[0].Confidence)
	assert.Equal(t, 0.0, args[1].Confidence)
}

func TestDefaultConfidenceApplied(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = map[string][]ai.Response{
		"optimist_analyst": {{Text: "A statement given entirely without any confidence value."}},
	}
	m := NewModerator(mock, nil, 3, 0)

	dctx, err := m.Initiate("q", []ai.AgentSpec{{RoleID: "optimist_analyst"}}, nil)
	require.NoError(t, err)

	args, _, err := m.FacilitateRound(context.Background(), dctx)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, 0.5, args[0].Confidence)
}
