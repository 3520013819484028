package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposium-labs/symposium/consensus"
	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/debate"
)

func openTestStore(t *testing.T) *DBStorage {
	t.Helper()
	store, err := Open(BadgerConfig{InMemory: true, DisableLogging: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSynthesis(id string, start time.Time) *debate.Synthesis {
	return &debate.Synthesis{
		DebateID:   id,
		Question:   "Should we keep the cache layer?",
		StartTime:  start,
		EndTime:    start.Add(45 * time.Second),
		RoundsHeld: 2,
		Agents:     []string{"optimist_analyst", "pessimist_critic"},
		ConsensusReport: &consensus.Report{
			ConsensusStrength:   0.42,
			TotalClaimsAnalyzed: 3,
			PrimaryInsights: []consensus.Insight{
				{Claim: "The cache layer pays for itself", Confidence: 4.2, SupportingAgents: []string{"optimist_analyst"}},
			},
		},
	}
}

func testArguments(start time.Time) []core.DebateArgument {
	return []core.DebateArgument{
		{
			AgentID:     "optimist_analyst",
			Text:        "The cache layer pays for itself. Hit rates stay above ninety percent.",
			Evidence:    []string{"hit_rate_dashboard"},
			Confidence:  0.8,
			Timestamp:   start.Add(10 * time.Second).UnixNano(),
			RoundNumber: 1,
		},
		{
			AgentID:     "pessimist_critic",
			Text:        "I disagree, the invalidation bugs cost more than the latency it saves.",
			Evidence:    []string{"incident_log", "oncall_report"},
			Confidence:  0.6,
			Timestamp:   start.Add(20 * time.Second).UnixNano(),
			RoundNumber: 1,
		},
		{
			AgentID:     "optimist_analyst",
			Text:        "The incident count dropped after the invalidation rewrite last quarter.",
			Confidence:  0.7,
			Timestamp:   start.Add(30 * time.Second).UnixNano(),
			RoundNumber: 2,
		},
	}
}

func TestGenericOperations(t *testing.T) {
	store := openTestStore(t)

	t.Run("Put Get Delete Roundtrip", func(t *testing.T) {
		require.NoError(t, store.Put("k1", []byte("v1")))
		val, err := store.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), val)

		require.NoError(t, store.Delete("k1"))
		val, err = store.Get("k1")
		require.NoError(t, err)
		assert.Nil(t, val)
	})

	t.Run("Get By Prefix", func(t *testing.T) {
		require.NoError(t, store.Put("pfx/a", []byte("1")))
		require.NoError(t, store.Put("pfx/b", []byte("2")))
		require.NoError(t, store.Put("other/c", []byte("3")))

		got, err := store.GetByPrefix("pfx/")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, []byte("1"), got["pfx/a"])
	})

	t.Run("Object Roundtrip", func(t *testing.T) {
		type payload struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		require.NoError(t, store.PutObject("obj/x", payload{Name: "n", Count: 7}))

		var out payload
		require.NoError(t, store.GetObject("obj/x", &out))
		assert.Equal(t, payload{Name: "n", Count: 7}, out)
	})

	t.Run("Missing Object Errors", func(t *testing.T) {
		var out map[string]interface{}
		err := store.GetObject("obj/missing", &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key not found")
	})

	t.Run("Metrics Counted", func(t *testing.T) {
		m := store.Metrics()
		assert.Greater(t, m.PutCount, int64(0))
		assert.Greater(t, m.GetCount, int64(0))
		assert.Zero(t, m.Errors)
	})
}

func TestTranscriptRoundtrip(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	synthesis := testSynthesis("debate_roundtrip", start)
	transcript := NewTranscript(synthesis, testArguments(start))
	require.NoError(t, store.SaveTranscript(transcript))

	loaded, err := store.GetTranscript("debate_roundtrip")
	require.NoError(t, err)

	assert.Equal(t, transcript.TranscriptID, loaded.TranscriptID)
	assert.Equal(t, transcript.Question, loaded.Question)
	assert.Equal(t, 45.0, loaded.DurationSeconds)
	assert.Len(t, loaded.Arguments, 3)
	require.NotNil(t, loaded.Synthesis)
	assert.Equal(t, 0.42, loaded.Synthesis.ConsensusReport.ConsensusStrength)
}

func TestTranscriptDerivedViews(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	transcript := NewTranscript(testSynthesis("debate_views", start), testArguments(start))

	t.Run("Debate Flow Grouped By Round", func(t *testing.T) {
		require.Len(t, transcript.DebateFlow, 2)
		assert.Equal(t, 1, transcript.DebateFlow[0].Round)
		assert.Equal(t, 2, transcript.DebateFlow[0].ArgumentsCount)
		assert.Contains(t, transcript.DebateFlow[0].RoundSummary, "disagreement")
		assert.Equal(t, []string{"pessimist_critic expressed disagreement"}, transcript.DebateFlow[0].KeyConflicts)
		assert.Contains(t, transcript.DebateFlow[1].RoundSummary, "agreement")
	})

	t.Run("Provenance Collects Distinct Sources", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"hit_rate_dashboard", "incident_log", "oncall_report"},
			transcript.InsightProvenance.DataSources)
		assert.Len(t, transcript.InsightProvenance.ReasoningChain, 3)
		require.Len(t, transcript.InsightProvenance.ConsensusFormation, 1)
		assert.Contains(t, transcript.InsightProvenance.ConsensusFormation[0], "The cache layer pays for itself")
	})

	t.Run("Audit Trail Sorted And Bracketed", func(t *testing.T) {
		trail := transcript.AuditTrail
		require.Len(t, trail, 5) // initiation + 3 arguments + consensus
		assert.Equal(t, "debate_initiated", trail[0].EventType)
		assert.Equal(t, "consensus_reached", trail[len(trail)-1].EventType)
		for i := 1; i < len(trail); i++ {
			assert.LessOrEqual(t, trail[i-1].Timestamp, trail[i].Timestamp)
		}
	})

	t.Run("Summary Derived", func(t *testing.T) {
		summary := transcript.Summarize()
		assert.Equal(t, "debate_views", summary.TranscriptID)
		assert.Equal(t, 3, summary.TotalArguments)
		assert.Equal(t, 0.42, summary.ConsensusStrength)
		assert.Equal(t, 1, summary.PrimaryInsightsCount)
	})
}

func TestListSummariesNewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	older := NewTranscript(testSynthesis("debate_older", base), testArguments(base))
	newer := NewTranscript(testSynthesis("debate_newer", base.Add(time.Hour)), testArguments(base.Add(time.Hour)))

	require.NoError(t, store.SaveTranscript(older))
	require.NoError(t, store.SaveTranscript(newer))

	summaries, err := store.ListSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "debate_newer", summaries[0].TranscriptID)
	assert.Equal(t, "debate_older", summaries[1].TranscriptID)
}
