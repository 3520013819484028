package debate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/consensus"
	"github.com/symposium-labs/symposium/core"
)

// recordingSink captures published event subjects in order.
type recordingSink struct {
	subjects []string
}

func (s *recordingSink) Publish(subject string, payload interface{}) {
	s.subjects = append(s.subjects, subject)
}

func TestRunStopsEarlyOnStrongConsensus(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = agreeingScripts
	m := NewModerator(mock, nil, 3, 0)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	builder, err := consensus.NewBuilder(0, 0)
	require.NoError(t, err)

	dataset := core.QueryResult{{"customer_age": 34, "amount": 120.0}}
	dctx, err := m.Initiate("Keep the current pricing model?", testRoster(), dataset)
	require.NoError(t, err)

	synthesis, err := m.Run(context.Background(), dctx, builder)
	require.NoError(t, err)

	// No disagreement: consensus 0.9 exceeds the early-stop bar after round 1.
	assert.Equal(t, 1, synthesis.RoundsHeld)
	assert.Len(t, synthesis.MetricsHistory, 1)
	assert.Equal(t, FinalSynthesis, m.Phase())
	assert.Empty(t, synthesis.SkippedAgents)
	assert.NotNil(t, synthesis.ConsensusReport)
	assert.NotNil(t, synthesis.BiasReport)
	assert.True(t, synthesis.FairnessGated)
	assert.Equal(t, []string{"optimist_analyst", "pessimist_critic"}, synthesis.Agents)
	assert.False(t, synthesis.EndTime.Before(synthesis.StartTime))

	assert.Contains(t, sink.subjects, core.SubjectDebateStarted)
	assert.Contains(t, sink.subjects, core.SubjectRoundCompleted)
	assert.Contains(t, sink.subjects, core.SubjectArgumentSubmitted)
	assert.Equal(t, core.SubjectConsensusReached, sink.subjects[len(sink.subjects)-1])
}

func TestRunExhaustsMaxRoundsUnderConflict(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = conflictScripts
	m := NewModerator(mock, nil, 3, 7.0)

	builder, err := consensus.NewBuilder(0, 0)
	require.NoError(t, err)

	dctx, err := m.Initiate("q", testRoster(), nil)
	require.NoError(t, err)

	synthesis, err := m.Run(context.Background(), dctx, builder)
	require.NoError(t, err)

	assert.Equal(t, 3, synthesis.RoundsHeld)
	assert.Len(t, synthesis.MetricsHistory, 3)
	assert.False(t, synthesis.FairnessGated)
}

func TestRunRecordsSkippedAgents(t *testing.T) {
	mock := ai.NewMockInvoker()
	mock.Scripts = conflictScripts
	mock.Fail = map[string]bool{"ethical_auditor": true}
	m := NewModerator(mock, nil, 2, 7.0)

	builder, err := consensus.NewBuilder(0, 0)
	require.NoError(t, err)

	roster := append(testRoster(), ai.AgentSpec{RoleID: "ethical_auditor", Name: "Vera"})
	dctx, err := m.Initiate("q", roster, nil)
	require.NoError(t, err)

	synthesis, err := m.Run(context.Background(), dctx, builder)
	require.NoError(t, err)

	assert.Equal(t, []string{"ethical_auditor"}, synthesis.SkippedAgents)
	require.NotNil(t, synthesis.ConsensusReport)
	require.NotEmpty(t, synthesis.ConsensusReport.Notes)
	assert.Contains(t, synthesis.ConsensusReport.Notes[0], "Reduced participation")
}
