package core

// DebateMetrics is a per-round snapshot of debate health. Computed fresh
// each round and not persisted beyond the session unless the caller logs it.
type DebateMetrics struct {
	ConflictIntensity    float64 `json:"conflict_intensity"`    // 1-10 scale
	ConsensusLevel       float64 `json:"consensus_level"`       // 0-1, always 1 - intensity/10
	BiasScore            float64 `json:"bias_score"`            // 0-1
	EvidenceStrength     float64 `json:"evidence_strength"`     // 0-1
	ParticipationBalance float64 `json:"participation_balance"` // 0-1
}
