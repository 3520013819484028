package debate

// Phase is the moderator's position in the debate lifecycle. Only
// Initialization and AdversarialExchange carry executable behavior here; the
// remaining phases are markers fulfilled by downstream components, but the
// sequence is always traversed in order and the current phase is observable.
type Phase int

const (
	Initialization Phase = iota
	OpeningStatements
	AdversarialExchange
	EvidenceReview
	ConsensusBuilding
	FinalSynthesis
)

func (p Phase) String() string {
	switch p {
	case Initialization:
		return "initialization"
	case OpeningStatements:
		return "opening_statements"
	case AdversarialExchange:
		return "adversarial_exchange"
	case EvidenceReview:
		return "evidence_review"
	case ConsensusBuilding:
		return "consensus_building"
	case FinalSynthesis:
		return "final_synthesis"
	default:
		return "unknown"
	}
}
