package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseStrings(t *testing.T) {
	expected := map[Phase]string{
		Initialization:      "initialization",
		OpeningStatements:   "opening_statements",
		AdversarialExchange: "adversarial_exchange",
		EvidenceReview:      "evidence_review",
		ConsensusBuilding:   "consensus_building",
		FinalSynthesis:      "final_synthesis",
	}
	for phase, name := range expected {
		assert.Equal(t, name, phase.String())
	}
	assert.Equal(t, "unknown", Phase(99).String())
}
