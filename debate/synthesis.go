package debate

import (
	"context"
	"fmt"
	"time"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/bias"
	"github.com/symposium-labs/symposium/consensus"
	"github.com/symposium-labs/symposium/core"
)

// Synthesis is the final merged output of a debate: the ranked consensus
// report, the whole-debate fairness summary and the per-round metrics
// history.
type Synthesis struct {
	DebateID        string               `json:"debate_id"`
	Question        string               `json:"question"`
	StartTime       time.Time            `json:"start_time"`
	EndTime         time.Time            `json:"end_time"`
	RoundsHeld      int                  `json:"rounds_held"`
	Agents          []string             `json:"agents_participating"`
	SkippedAgents   []string             `json:"skipped_agents,omitempty"`
	MetricsHistory  []core.DebateMetrics `json:"metrics_history"`
	ConsensusReport *consensus.Report    `json:"consensus_report"`
	BiasReport      *bias.Report         `json:"bias_report"`
	FairnessGated   bool                 `json:"fairness_pass_meaningful"`
}

// Run executes the whole debate lifecycle: rounds until the stopping policy
// fires, then consensus building, the whole-debate bias pass and synthesis.
// Partial participation never aborts the debate; only a fully unresponsive
// round does.
func (m *Moderator) Run(ctx context.Context, dctx *Context, builder *consensus.Builder) (*Synthesis, error) {
	var metricsHistory []core.DebateMetrics

	for {
		_, metrics, err := m.FacilitateRound(ctx, dctx)
		if err != nil {
			return nil, err
		}
		metricsHistory = append(metricsHistory, metrics)
		if !m.ShouldContinue(metrics) {
			break
		}
	}

	m.mu.Lock()
	m.phase = EvidenceReview
	m.mu.Unlock()

	entries := m.log.Entries()

	m.mu.Lock()
	m.phase = ConsensusBuilding
	m.mu.Unlock()

	report := builder.BuildConsensus(entries)

	skipped := skippedAgents(dctx.Roster, entries, m.CurrentRound())
	if len(skipped) > 0 {
		report.Notes = append(report.Notes, fmt.Sprintf(
			"Reduced participation: %d agent(s) skipped at least one round (%v); evidence base is correspondingly smaller.",
			len(skipped), skipped))
	}

	biasReport := m.detector.AnalyzeDebate(entries)

	m.mu.Lock()
	m.phase = FinalSynthesis
	m.mu.Unlock()

	synthesis := &Synthesis{
		DebateID:        dctx.DebateID,
		Question:        dctx.Question,
		StartTime:       dctx.StartTime,
		EndTime:         time.Now(),
		RoundsHeld:      m.CurrentRound(),
		Agents:          rosterIDs(dctx.Roster),
		SkippedAgents:   skipped,
		MetricsHistory:  metricsHistory,
		ConsensusReport: report,
		BiasReport:      biasReport,
		FairnessGated:   bias.DatasetNeedsFairnessPass(dctx.Dataset.FieldNames()),
	}

	m.publish(core.SubjectConsensusReached, map[string]interface{}{
		"debate_id":          dctx.DebateID,
		"rounds":             synthesis.RoundsHeld,
		"consensus_strength": report.ConsensusStrength,
		"total_claims":       report.TotalClaimsAnalyzed,
	})

	return synthesis, nil
}

// skippedAgents lists roster members that missed at least one round.
func skippedAgents(roster []ai.AgentSpec, entries []core.DebateArgument, rounds int) []string {
	counts := make(map[string]int)
	for _, arg := range entries {
		counts[arg.AgentID]++
	}
	var skipped []string
	for _, agent := range roster {
		if counts[agent.RoleID] < rounds {
			skipped = append(skipped, agent.RoleID)
		}
	}
	return skipped
}
