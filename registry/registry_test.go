package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symposium-labs/symposium/debate"
)

func TestSessionLifecycle(t *testing.T) {
	s := &Session{Context: &debate.Context{DebateID: "debate_test_1"}}

	Register("debate_test_1", s)
	defer Remove("debate_test_1")

	got, ok := Get("debate_test_1")
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Contains(t, ActiveIDs(), "debate_test_1")

	Remove("debate_test_1")
	_, ok = Get("debate_test_1")
	assert.False(t, ok)
	assert.NotContains(t, ActiveIDs(), "debate_test_1")
}
