package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/debate"
)

const (
	transcriptPrefix = "transcript/"
	summaryPrefix    = "summary/"
)

// AuditEvent is one entry in a transcript's audit trail.
type AuditEvent struct {
	Timestamp int64                  `json:"timestamp"`
	EventType string                 `json:"event_type"`
	Agent     string                 `json:"agent,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// RoundFlow summarizes one round for the transcript's chronological view.
type RoundFlow struct {
	Round              int      `json:"round"`
	ArgumentsCount     int      `json:"arguments_count"`
	AgentsParticipated []string `json:"agents_participated"`
	RoundSummary       string   `json:"round_summary"`
	KeyConflicts       []string `json:"key_conflicts"`
}

// ReasoningStep is one link in the provenance chain from raw arguments to
// final insights.
type ReasoningStep struct {
	Agent         string  `json:"agent"`
	Timestamp     int64   `json:"timestamp"`
	Reasoning     string  `json:"reasoning"` // truncated to 200 chars
	Confidence    float64 `json:"confidence"`
	EvidenceCount int     `json:"evidence_count"`
}

// Provenance tracks how insights formed from the raw data.
type Provenance struct {
	DataSources        []string        `json:"data_sources"`
	ReasoningChain     []ReasoningStep `json:"reasoning_chain"`
	ConsensusFormation []string        `json:"consensus_formation"`
}

// Transcript is the persisted, append-only session log for one debate.
type Transcript struct {
	TranscriptID        string                `json:"transcript_id"`
	Question            string                `json:"question"`
	StartTime           time.Time             `json:"start_time"`
	EndTime             time.Time             `json:"end_time"`
	DurationSeconds     float64               `json:"duration_seconds"`
	AgentsParticipating []string              `json:"agents_participating"`
	Arguments           []core.DebateArgument `json:"arguments"`
	DebateFlow          []RoundFlow           `json:"debate_flow"`
	Synthesis           *debate.Synthesis     `json:"consensus_report"`
	InsightProvenance   Provenance            `json:"insight_provenance"`
	AuditTrail          []AuditEvent          `json:"audit_trail"`
}

// Summary is the compact listing record written alongside each transcript.
type Summary struct {
	TranscriptID         string    `json:"transcript_id"`
	Question             string    `json:"question"`
	Duration             float64   `json:"duration"`
	Agents               []string  `json:"agents"`
	TotalArguments       int       `json:"total_arguments"`
	ConsensusStrength    float64   `json:"consensus_strength"`
	PrimaryInsightsCount int       `json:"primary_insights_count"`
	Timestamp            time.Time `json:"timestamp"`
}

// NewTranscript assembles the persisted record for a finished debate. The
// audit trail is sorted by timestamp before it is written.
func NewTranscript(synthesis *debate.Synthesis, arguments []core.DebateArgument) *Transcript {
	return &Transcript{
		TranscriptID:        synthesis.DebateID,
		Question:            synthesis.Question,
		StartTime:           synthesis.StartTime,
		EndTime:             synthesis.EndTime,
		DurationSeconds:     synthesis.EndTime.Sub(synthesis.StartTime).Seconds(),
		AgentsParticipating: synthesis.Agents,
		Arguments:           arguments,
		DebateFlow:          buildDebateFlow(arguments),
		Synthesis:           synthesis,
		InsightProvenance:   buildProvenance(synthesis, arguments),
		AuditTrail:          buildAuditTrail(synthesis, arguments),
	}
}

// Summarize derives the compact listing record from a transcript.
func (t *Transcript) Summarize() Summary {
	s := Summary{
		TranscriptID:   t.TranscriptID,
		Question:       t.Question,
		Duration:       t.DurationSeconds,
		Agents:         t.AgentsParticipating,
		TotalArguments: len(t.Arguments),
		Timestamp:      t.StartTime,
	}
	if t.Synthesis != nil && t.Synthesis.ConsensusReport != nil {
		s.ConsensusStrength = t.Synthesis.ConsensusReport.ConsensusStrength
		s.PrimaryInsightsCount = len(t.Synthesis.ConsensusReport.PrimaryInsights)
	}
	return s
}

// SaveTranscript persists the full transcript and its summary.
func (s *DBStorage) SaveTranscript(t *Transcript) error {
	if err := s.PutObject(transcriptPrefix+t.TranscriptID, t); err != nil {
		return fmt.Errorf("failed to save transcript %s: %w", t.TranscriptID, err)
	}
	return s.SaveSummary(t.Summarize())
}

// GetTranscript retrieves a transcript by id.
func (s *DBStorage) GetTranscript(transcriptID string) (*Transcript, error) {
	var t Transcript
	if err := s.GetObject(transcriptPrefix+transcriptID, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveSummary writes the compact listing record.
func (s *DBStorage) SaveSummary(summary Summary) error {
	return s.PutObject(summaryPrefix+summary.TranscriptID, summary)
}

// ListSummaries returns all stored summaries, newest first.
func (s *DBStorage) ListSummaries() ([]Summary, error) {
	raw, err := s.GetByPrefix(summaryPrefix)
	if err != nil {
		return nil, err
	}
	var summaries []Summary
	for _, data := range raw {
		var summary Summary
		if err := json.Unmarshal(data, &summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary: %v", err)
		}
		summaries = append(summaries, summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	return summaries, nil
}

// buildDebateFlow groups arguments by round into chronological flow entries.
func buildDebateFlow(arguments []core.DebateArgument) []RoundFlow {
	rounds := make(map[int][]core.DebateArgument)
	for _, arg := range arguments {
		rounds[arg.RoundNumber] = append(rounds[arg.RoundNumber], arg)
	}

	var numbers []int
	for n := range rounds {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var flow []RoundFlow
	for _, n := range numbers {
		args := rounds[n]
		var agents []string
		for _, arg := range args {
			agents = append(agents, arg.AgentID)
		}
		flow = append(flow, RoundFlow{
			Round:              n,
			ArgumentsCount:     len(args),
			AgentsParticipated: agents,
			RoundSummary:       summarizeRound(args),
			KeyConflicts:       identifyConflicts(args),
		})
	}
	return flow
}

func summarizeRound(args []core.DebateArgument) string {
	summary := fmt.Sprintf("Round with %d arguments. ", len(args))
	if len(identifyConflicts(args)) > 0 {
		return summary + "Significant disagreement observed."
	}
	return summary + "General agreement on key points."
}

var conflictIndicators = []string{"disagree", "wrong", "incorrect", "however", "but", "contrary"}

func identifyConflicts(args []core.DebateArgument) []string {
	seen := make(map[string]bool)
	var conflicts []string
	for _, arg := range args {
		lower := strings.ToLower(arg.Text)
		for _, indicator := range conflictIndicators {
			if strings.Contains(lower, indicator) {
				note := fmt.Sprintf("%s expressed disagreement", arg.AgentID)
				if !seen[note] {
					seen[note] = true
					conflicts = append(conflicts, note)
				}
				break
			}
		}
	}
	return conflicts
}

// buildProvenance assembles the data-to-insight trail.
func buildProvenance(synthesis *debate.Synthesis, arguments []core.DebateArgument) Provenance {
	p := Provenance{}

	seen := make(map[string]bool)
	for _, arg := range arguments {
		for _, source := range arg.Evidence {
			if !seen[source] {
				seen[source] = true
				p.DataSources = append(p.DataSources, source)
			}
		}
	}

	for _, arg := range arguments {
		reasoning := arg.Text
		if len(reasoning) > 200 {
			reasoning = reasoning[:200] + "..."
		}
		p.ReasoningChain = append(p.ReasoningChain, ReasoningStep{
			Agent:         arg.AgentID,
			Timestamp:     arg.Timestamp,
			Reasoning:     reasoning,
			Confidence:    arg.Confidence,
			EvidenceCount: len(arg.Evidence),
		})
	}

	if synthesis.ConsensusReport != nil {
		for _, insight := range synthesis.ConsensusReport.PrimaryInsights {
			p.ConsensusFormation = append(p.ConsensusFormation, fmt.Sprintf(
				"%s (confidence %.2f, %d agents, %d evidence items)",
				insight.Claim, insight.Confidence, len(insight.SupportingAgents), insight.EvidenceCount))
		}
	}

	return p
}

// buildAuditTrail records initiation, every argument submission and the
// consensus event, sorted by timestamp.
func buildAuditTrail(synthesis *debate.Synthesis, arguments []core.DebateArgument) []AuditEvent {
	events := []AuditEvent{
		{
			Timestamp: synthesis.StartTime.UnixNano(),
			EventType: "debate_initiated",
			Details: map[string]interface{}{
				"question": synthesis.Question,
				"agents":   synthesis.Agents,
			},
		},
	}

	for _, arg := range arguments {
		events = append(events, AuditEvent{
			Timestamp: arg.Timestamp,
			EventType: "argument_submitted",
			Agent:     arg.AgentID,
			Details: map[string]interface{}{
				"round":           arg.RoundNumber,
				"confidence":      arg.Confidence,
				"argument_length": len(arg.Text),
				"evidence_count":  len(arg.Evidence),
			},
		})
	}

	events = append(events, AuditEvent{
		Timestamp: synthesis.EndTime.UnixNano(),
		EventType: "consensus_reached",
		Details: map[string]interface{}{
			"rounds_held":  synthesis.RoundsHeld,
			"total_claims": totalClaims(synthesis),
		},
	})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
	return events
}

func totalClaims(synthesis *debate.Synthesis) int {
	if synthesis.ConsensusReport == nil {
		return 0
	}
	return synthesis.ConsensusReport.TotalClaimsAnalyzed
}
