package core

// Evidence is a scored citation attached to a claim or argument. It is
// copied by value whenever it is shared across claims.
type Evidence struct {
	Source      string        `json:"source"`
	DataPoints  []interface{} `json:"data_points"`
	Confidence  float64       `json:"confidence"`
	AgentSource string        `json:"agent_source"`
}

// DebateArgument is one agent's contribution in one round. Arguments are
// immutable once appended to the debate log.
type DebateArgument struct {
	AgentID     string   `json:"agent_id"`
	Text        string   `json:"text"`
	Evidence    []string `json:"evidence"`
	Confidence  float64  `json:"confidence"`
	Timestamp   int64    `json:"timestamp"` // monotonic, nanoseconds
	RoundNumber int      `json:"round_number"`
	RespondsTo  string   `json:"responds_to,omitempty"`
}

// QueryRecord is one homogeneous record handed over by an upstream
// data-retrieval collaborator.
type QueryRecord map[string]interface{}

// QueryResult is the ordered record sequence the moderator and consensus
// builder accept as the shared dataset.
type QueryResult []QueryRecord

// FieldNames returns the union of field names across records, used by the
// bias detector's demographic gate.
func (qr QueryResult) FieldNames() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, rec := range qr {
		for name := range rec {
			if !seen[name] {
				seen[name] = true
				fields = append(fields, name)
			}
		}
	}
	return fields
}
