package core

// Debate lifecycle subjects, published by the moderator and consumed by the
// communication layer.
const (
	SubjectDebateStarted     = "symposium.debate.started"
	SubjectRoundCompleted    = "symposium.round.completed"
	SubjectArgumentSubmitted = "symposium.argument.submitted"
	SubjectConsensusReached  = "symposium.consensus.reached"
)
