package bias

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposium-labs/symposium/core"
)

func TestScoreArgument(t *testing.T) {
	detector := NewDetector(0, nil)

	t.Run("Confirmation Phrase Without Counter", func(t *testing.T) {
		score, patterns := detector.ScoreArgument("this proves our hypothesis about the rollout")
		assert.InDelta(t, 0.25, score, 1e-9)
		assert.Equal(t, []string{PatternConfirmation}, patterns)
	})

	t.Run("Confirmation Phrase With Counter", func(t *testing.T) {
		// The counter-connective removes the no-counter bonus, leaving only
		// the phrase contribution.
		score, patterns := detector.ScoreArgument(
			"this proves the point, although other readings exist")
		assert.InDelta(t, 0.15, score, 1e-9)
		assert.Equal(t, []string{PatternConfirmation}, patterns)
	})

	t.Run("Sample Issues", func(t *testing.T) {
		// "limited data" hits a catalog keyword (0.8*0.2) and a regex (0.2),
		// "12 samples" hits another regex (0.2).
		score, patterns := detector.ScoreArgument("we only have limited data from 12 samples")
		assert.InDelta(t, 0.56, score, 1e-9)
		assert.Equal(t, []string{PatternSample}, patterns)
	})

	t.Run("Demographic Generalization", func(t *testing.T) {
		score, patterns := detector.ScoreArgument(
			"All urban residents prefer this option, while young typically adopt it early")
		assert.InDelta(t, 0.6, score, 1e-9)
		assert.Equal(t, []string{PatternDemographic}, patterns)
	})

	t.Run("Clean Argument", func(t *testing.T) {
		score, patterns := detector.ScoreArgument(
			"The measured throughput improved steadily across the full year of deployments.")
		assert.Zero(t, score)
		assert.Empty(t, patterns)
	})

	t.Run("Score Capped At One", func(t *testing.T) {
		loaded := "this proves and clearly shows what confirms and validates our view, obviously. " +
			"The small sample of 5 samples with limited data is not representative. " +
			"All urban men always behave this way based on gender and location. " +
			"Initial data shows the baseline from the latest current trend, a seasonal anomaly."
		score, patterns := detector.ScoreArgument(loaded)
		assert.LessOrEqual(t, score, 1.0)
		assert.Greater(t, len(patterns), 3)
	})
}

func TestAnalyzeDebate(t *testing.T) {
	detector := NewDetector(0.85, nil)

	biased := core.DebateArgument{
		AgentID:     "pessimist_critic",
		Text:        "we only have limited data from 12 samples",
		Confidence:  0.6,
		Timestamp:   2,
		RoundNumber: 1,
	}
	clean := core.DebateArgument{
		AgentID:     "optimist_analyst",
		Text:        "The measured throughput improved steadily across the full year of deployments.",
		Confidence:  0.8,
		Timestamp:   1,
		RoundNumber: 1,
	}

	report := detector.AnalyzeDebate([]core.DebateArgument{clean, biased})

	t.Run("Fairness Violation Flagged", func(t *testing.T) {
		require.Len(t, report.Violations, 1)
		v := report.Violations[0]
		assert.Equal(t, "pessimist_critic", v.Agent)
		assert.Greater(t, v.BiasScore, 1.0-0.85)
		assert.Contains(t, v.Patterns, PatternSample)
		assert.Equal(t, int64(2), v.Timestamp)
	})

	t.Run("Agent Profiles", func(t *testing.T) {
		require.Contains(t, report.AgentProfiles, "pessimist_critic")
		require.Contains(t, report.AgentProfiles, "optimist_analyst")
		assert.Equal(t, 1, report.AgentProfiles["pessimist_critic"].ArgumentCount)
		assert.Zero(t, report.AgentProfiles["optimist_analyst"].TotalBiasScore)
	})

	t.Run("Overall Score Is Argument Weighted Mean", func(t *testing.T) {
		assert.InDelta(t, 0.28, report.OverallBiasScore, 1e-9)
	})

	t.Run("Balanced Participation Scores One", func(t *testing.T) {
		assert.InDelta(t, 1.0, report.BalanceScore, 1e-9)
	})

	t.Run("Violation Recommendation Present", func(t *testing.T) {
		require.NotEmpty(t, report.Recommendations)
		assert.Contains(t, report.Recommendations[0], "1 fairness violations")
	})
}

func TestAnalyzeDebateCleanDefaults(t *testing.T) {
	detector := NewDetector(0, nil)
	args := []core.DebateArgument{
		{AgentID: "a", Text: "The measured throughput improved steadily across the full year.", Timestamp: 1},
		{AgentID: "b", Text: "Deployment velocity increased in every quarter under review.", Timestamp: 2},
	}

	report := detector.AnalyzeDebate(args)
	assert.Empty(t, report.Violations)
	assert.Equal(t, []string{
		"Bias levels within acceptable thresholds. Continue current debate protocols.",
	}, report.Recommendations)
	assert.Equal(t, 0.85, report.FairnessThreshold)
	assert.Greater(t, report.DiversityScore, 0.0)
}

func TestViolationExcerptTruncated(t *testing.T) {
	detector := NewDetector(0.85, nil)
	long := "this proves our hypothesis " + strings.Repeat("with sweeping certainty ", 20)
	require.Greater(t, len(long), 200)

	report := detector.AnalyzeDebate([]core.DebateArgument{
		{AgentID: "a", Text: long, Timestamp: 1},
	})
	require.Len(t, report.Violations, 1)
	assert.Len(t, report.Violations[0].Argument, 203) // 200 chars plus ellipsis
}

func TestBalanceScoreRequiresTwoAgents(t *testing.T) {
	profiles := map[string]*AgentProfile{"solo": {ArgumentCount: 4}}
	assert.Zero(t, balanceScore(profiles))
}

func TestDatasetNeedsFairnessPass(t *testing.T) {
	assert.True(t, DatasetNeedsFairnessPass([]string{"customer_age", "amount"}))
	assert.True(t, DatasetNeedsFairnessPass([]string{"REGION_CODE"}))
	assert.False(t, DatasetNeedsFairnessPass([]string{"amount", "sku", "quantity"}))
	assert.False(t, DatasetNeedsFairnessPass(nil))
}
