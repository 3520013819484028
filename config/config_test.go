package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	settings := Load()
	assert.Equal(t, "nats://localhost:4222", settings.NATSUrl)
	assert.Equal(t, 3, settings.MaxRounds)
	assert.Equal(t, 7.0, settings.ConflictThreshold)
	assert.Equal(t, 0.6, settings.VoteWeight)
	assert.Equal(t, 0.4, settings.EvidenceWeight)
	assert.Equal(t, 0.85, settings.FairnessThreshold)
	assert.Empty(t, settings.AvailableModels)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SYMPOSIUM_MAX_ROUNDS", "5")
	t.Setenv("SYMPOSIUM_CONFLICT_THRESHOLD", "6.5")
	t.Setenv("SYMPOSIUM_AVAILABLE_MODELS", "gemini-flash, claude-3-sonnet")

	settings := Load()
	assert.Equal(t, 5, settings.MaxRounds)
	assert.Equal(t, 6.5, settings.ConflictThreshold)
	assert.Equal(t, []string{"gemini-flash", "claude-3-sonnet"}, settings.AvailableModels)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("SYMPOSIUM_MAX_ROUNDS", "many")
	t.Setenv("SYMPOSIUM_VOTE_WEIGHT", "most")

	settings := Load()
	assert.Equal(t, 3, settings.MaxRounds)
	assert.Equal(t, 0.6, settings.VoteWeight)
}
