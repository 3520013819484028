// Package debate orchestrates multi-agent debate rounds with conflict
// tracking, round metrics and a bounded stopping policy.
package debate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/bias"
	"github.com/symposium-labs/symposium/core"
)

const (
	// contextWindow bounds how many recent opponent entries are folded into
	// an agent's prompt.
	contextWindow = 6

	// defaultConfidence is applied when an agent omits a confidence value.
	defaultConfidence = 0.5
)

// conflictKeywords drive the pairwise disagreement heuristic.
var conflictKeywords = []string{
	"disagree", "wrong", "incorrect", "flawed", "however", "but",
	"contrary", "opposite", "challenge", "dispute", "refute",
}

// EventSink receives debate lifecycle events. Implementations must not
// block; a nil sink disables eventing.
type EventSink interface {
	Publish(subject string, payload interface{})
}

// Context carries one debate session's identity and collaborators.
type Context struct {
	DebateID  string
	Question  string
	Roster    []ai.AgentSpec
	Dataset   core.QueryResult
	StartTime time.Time
	Session   core.SessionStore
}

// Moderator runs a bounded number of argument-collection rounds, computes
// objective round metrics and decides when to stop.
type Moderator struct {
	maxRounds         int
	conflictThreshold float64
	agentTimeout      time.Duration

	invoker  ai.Invoker
	detector *bias.Detector
	events   EventSink

	mu           sync.RWMutex
	log          *core.DebateLog
	currentRound int
	phase        Phase
}

// NewModerator wires a moderator over an agent invoker. Zero values fall
// back to defaults: 3 rounds, conflict threshold 7.0, 30s agent timeout.
func NewModerator(invoker ai.Invoker, detector *bias.Detector, maxRounds int, conflictThreshold float64) *Moderator {
	if maxRounds <= 0 {
		maxRounds = 3
	}
	if conflictThreshold == 0 {
		conflictThreshold = 7.0
	}
	if detector == nil {
		detector = bias.NewDetector(0, nil)
	}
	return &Moderator{
		maxRounds:         maxRounds,
		conflictThreshold: conflictThreshold,
		agentTimeout:      30 * time.Second,
		invoker:           invoker,
		detector:          detector,
		log:               core.NewDebateLog(),
	}
}

// SetEventSink attaches a lifecycle event sink. Call before Initiate.
func (m *Moderator) SetEventSink(sink EventSink) { m.events = sink }

// SetAgentTimeout overrides the per-invocation timeout.
func (m *Moderator) SetAgentTimeout(d time.Duration) { m.agentTimeout = d }

// Phase returns the currently observable debate phase.
func (m *Moderator) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// CurrentRound returns the number of completed or in-progress rounds.
func (m *Moderator) CurrentRound() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentRound
}

// Log exposes the session's append-only argument log.
func (m *Moderator) Log() *core.DebateLog { return m.log }

// Initiate starts a new debate session: the log and round counter are reset,
// the phase returns to Initialization and a session identifier is derived
// from the start time.
func (m *Moderator) Initiate(question string, roster []ai.AgentSpec, dataset core.QueryResult) (*Context, error) {
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: agent roster must not be empty", core.ErrInvalidConfiguration)
	}

	m.mu.Lock()
	m.log.Reset()
	m.currentRound = 0
	m.phase = Initialization
	m.mu.Unlock()

	start := time.Now()
	dctx := &Context{
		DebateID:  fmt.Sprintf("debate_%d_%s", start.Unix(), uuid.NewString()[:8]),
		Question:  question,
		Roster:    roster,
		Dataset:   dataset,
		StartTime: start,
		Session:   core.NewMemorySessionStore(),
	}
	dctx.Session.Set(core.SessionKeyQuestion, question)
	if dataset != nil {
		dctx.Session.Set(core.SessionKeyDataset, dataset)
	}

	m.publish(core.SubjectDebateStarted, map[string]interface{}{
		"debate_id": dctx.DebateID,
		"question":  question,
		"agents":    rosterIDs(roster),
	})

	return dctx, nil
}

// FacilitateRound collects at most one argument per roster agent. Agent
// invocations run concurrently; each reads only the log state as of the
// round's start, and all completions are joined before metrics are computed.
// A failed or empty invocation skips that agent for the round. A round in
// which no agent responds is fatal.
func (m *Moderator) FacilitateRound(ctx context.Context, dctx *Context) ([]core.DebateArgument, core.DebateMetrics, error) {
	m.mu.Lock()
	m.currentRound++
	round := m.currentRound
	if round == 1 {
		m.phase = OpeningStatements
	} else {
		m.phase = AdversarialExchange
	}
	m.mu.Unlock()

	// Snapshot once: every agent in this round sees the same prior state.
	prior := m.log.Entries()

	var wg sync.WaitGroup
	results := make([]*core.DebateArgument, len(dctx.Roster))

	for i, agent := range dctx.Roster {
		wg.Add(1)
		go func(i int, agent ai.AgentSpec) {
			defer wg.Done()
			arg := m.collectArgument(ctx, dctx, agent, prior, round)
			results[i] = arg
		}(i, agent)
	}
	wg.Wait()

	// Append in roster order now that the round is joined; consumers sort by
	// (round, timestamp) regardless.
	var roundArguments []core.DebateArgument
	for _, arg := range results {
		if arg == nil {
			continue
		}
		m.log.Append(*arg)
		roundArguments = append(roundArguments, *arg)
		m.publish(core.SubjectArgumentSubmitted, map[string]interface{}{
			"debate_id": dctx.DebateID,
			"round":     round,
			"agent_id":  arg.AgentID,
		})
	}

	if len(roundArguments) == 0 {
		return nil, core.DebateMetrics{}, fmt.Errorf("%w: round %d", core.ErrDebateStalled, round)
	}

	metrics := m.calculateMetrics(roundArguments, len(dctx.Roster))
	dctx.Session.Set(core.SessionKeyLastRound, roundArguments)
	appendMetricsHistory(dctx.Session, metrics)

	m.publish(core.SubjectRoundCompleted, map[string]interface{}{
		"debate_id": dctx.DebateID,
		"round":     round,
		"arguments": len(roundArguments),
		"metrics":   metrics,
	})

	return roundArguments, metrics, nil
}

// collectArgument invokes one agent with its opponent context. Errors and
// empty responses are contained here: the agent simply does not participate
// in the round.
func (m *Moderator) collectArgument(ctx context.Context, dctx *Context, agent ai.AgentSpec, prior []core.DebateArgument, round int) *core.DebateArgument {
	invCtx, cancel := context.WithTimeout(ctx, m.agentTimeout)
	defer cancel()

	prompt := buildPrompt(dctx.Question, agent, prior)
	resp, err := m.invoker.Invoke(invCtx, agent.RoleID, prompt, dctx.Session)
	if err != nil {
		log.Printf("Agent %s unavailable in round %d: %v", agent.RoleID, round, err)
		return nil
	}
	if strings.TrimSpace(resp.Text) == "" {
		log.Printf("Agent %s returned an empty response in round %d, skipping", agent.RoleID, round)
		return nil
	}

	confidence := resp.Confidence
	if confidence == 0 {
		confidence = defaultConfidence
	}
	// Live models occasionally ignore the 0-1 contract.
	confidence = min(1.0, max(0.0, confidence))

	return &core.DebateArgument{
		AgentID:     agent.RoleID,
		Text:        resp.Text,
		Evidence:    resp.Evidence,
		Confidence:  confidence,
		Timestamp:   time.Now().UnixNano(),
		RoundNumber: round,
	}
}

// buildPrompt folds the question plus the most recent opponent entries
// (windowed, excluding the agent's own prior output) into the agent prompt.
func buildPrompt(question string, agent ai.AgentSpec, prior []core.DebateArgument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	if agent.Stance != "" {
		fmt.Fprintf(&b, "Your stance: %s.\n", agent.Stance)
	}
	if len(agent.Traits) > 0 {
		fmt.Fprintf(&b, "Your traits: %s.\n", strings.Join(agent.Traits, ", "))
	}

	var opponents []core.DebateArgument
	for _, arg := range prior {
		if arg.AgentID != agent.RoleID {
			opponents = append(opponents, arg)
		}
	}
	if len(opponents) > contextWindow {
		opponents = opponents[len(opponents)-contextWindow:]
	}

	if len(opponents) > 0 {
		b.WriteString("\nRecent opponent arguments:\n")
		for _, arg := range opponents {
			fmt.Fprintf(&b, "\n%s: %s\n", arg.AgentID, arg.Text)
			if len(arg.Evidence) > 0 {
				preview := arg.Evidence
				if len(preview) > 2 {
					preview = preview[:2]
				}
				fmt.Fprintf(&b, "Evidence: %s\n", strings.Join(preview, ", "))
			}
		}
	}

	return b.String()
}

// ShouldContinue applies the stopping policy. The max-round cap dominates
// every other rule; high conflict with low consensus extends the debate;
// strong consensus ends it early.
func (m *Moderator) ShouldContinue(metrics core.DebateMetrics) bool {
	m.mu.RLock()
	round := m.currentRound
	m.mu.RUnlock()

	if round >= m.maxRounds {
		return false
	}
	if metrics.ConflictIntensity > m.conflictThreshold && metrics.ConsensusLevel < 0.6 {
		return true
	}
	if metrics.ConsensusLevel > 0.8 {
		return false
	}
	return round < m.maxRounds
}

func (m *Moderator) calculateMetrics(arguments []core.DebateArgument, rosterSize int) core.DebateMetrics {
	intensity := conflictIntensity(arguments)
	return core.DebateMetrics{
		ConflictIntensity:    intensity,
		ConsensusLevel:       1.0 - intensity/10.0,
		BiasScore:            m.roundBias(arguments),
		EvidenceStrength:     evidenceStrength(arguments),
		ParticipationBalance: participationBalance(len(arguments), rosterSize),
	}
}

// conflictIntensity scores pairwise disagreement on a 1-10 scale. A pair
// disagrees when either argument contains a conflict keyword. With fewer
// than two arguments the intensity floors at 1.0.
func conflictIntensity(arguments []core.DebateArgument) float64 {
	if len(arguments) < 2 {
		return 1.0
	}

	disagreements := 0
	comparisons := 0
	for i := range arguments {
		for j := i + 1; j < len(arguments); j++ {
			comparisons++
			if containsConflictKeyword(arguments[i].Text) || containsConflictKeyword(arguments[j].Text) {
				disagreements++
			}
		}
	}
	if comparisons == 0 {
		return 1.0
	}

	ratio := float64(disagreements) / float64(comparisons)
	return min(10.0, 1.0+ratio*9.0)
}

func containsConflictKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range conflictKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// roundBias averages the per-argument bias score across the round.
func (m *Moderator) roundBias(arguments []core.DebateArgument) float64 {
	if len(arguments) == 0 {
		return 0
	}
	var total float64
	for _, arg := range arguments {
		score, _ := m.detector.ScoreArgument(arg.Text)
		total += score
	}
	return total / float64(len(arguments))
}

// evidenceStrength normalizes citation density: three or more citations per
// argument saturate the scale.
func evidenceStrength(arguments []core.DebateArgument) float64 {
	if len(arguments) == 0 {
		return 0
	}
	var total float64
	for _, arg := range arguments {
		total += min(1.0, float64(len(arg.Evidence))/3.0)
	}
	return total / float64(len(arguments))
}

// participationBalance is the responded-to-roster ratio for the round, so a
// skipped agent lowers the score proportionally.
func participationBalance(responded, rosterSize int) float64 {
	if rosterSize == 0 {
		return 0
	}
	return float64(responded) / float64(rosterSize)
}

func (m *Moderator) publish(subject string, payload interface{}) {
	if m.events != nil {
		m.events.Publish(subject, payload)
	}
}

func rosterIDs(roster []ai.AgentSpec) []string {
	ids := make([]string, len(roster))
	for i, agent := range roster {
		ids[i] = agent.RoleID
	}
	return ids
}

func appendMetricsHistory(session core.SessionStore, metrics core.DebateMetrics) {
	var history []core.DebateMetrics
	if v, ok := session.Get(core.SessionKeyMetricsHistory); ok {
		if h, ok := v.([]core.DebateMetrics); ok {
			history = h
		}
	}
	session.Set(core.SessionKeyMetricsHistory, append(history, metrics))
}
