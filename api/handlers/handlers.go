package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/symposium-labs/symposium/ai"
	"github.com/symposium-labs/symposium/bias"
	"github.com/symposium-labs/symposium/consensus"
	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/debate"
	"github.com/symposium-labs/symposium/registry"
	"github.com/symposium-labs/symposium/router"
	"github.com/symposium-labs/symposium/storage"
)

// Deps are the shared collaborators handlers operate on. Set once at
// startup via Init.
type Deps struct {
	Store             storage.Store
	Router            *router.Router
	Invoker           ai.Invoker
	Events            debate.EventSink
	MaxRounds         int
	ConflictThreshold float64
	VoteWeight        float64
	EvidenceWeight    float64
	FairnessThreshold float64
}

var deps Deps

// Init wires the handler package's collaborators.
func Init(d Deps) {
	deps = d
}

// StartDebateRequest is the POST /api/debates payload.
type StartDebateRequest struct {
	Question   string           `json:"question" binding:"required"`
	Agents     []string         `json:"agents"`
	Complexity float64          `json:"complexity"`
	Budget     float64          `json:"budget"`
	Dataset    core.QueryResult `json:"dataset"`
}

// defaultAgents is the standard four-role roster.
var defaultAgents = []string{
	string(router.RoleDataDetective),
	string(router.RoleOptimistAnalyst),
	string(router.RolePessimistCritic),
	string(router.RoleEthicalAuditor),
}

// StartDebate runs a full debate for the posted question and returns the
// synthesis. The session is visible in the registry while it runs.
func StartDebate(c *gin.Context) {
	var req StartDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debate request"})
		return
	}

	agents := req.Agents
	if len(agents) == 0 {
		agents = defaultAgents
	}

	roster := BuildRoster(deps.Router, agents, req.Complexity, req.Budget)

	detector := bias.NewDetector(deps.FairnessThreshold, nil)
	moderator := debate.NewModerator(deps.Invoker, detector, deps.MaxRounds, deps.ConflictThreshold)
	moderator.SetEventSink(deps.Events)

	builder, err := consensus.NewBuilder(deps.VoteWeight, deps.EvidenceWeight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dctx, err := moderator.Initiate(req.Question, roster, req.Dataset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registry.Register(dctx.DebateID, &registry.Session{Moderator: moderator, Context: dctx})
	defer registry.Remove(dctx.DebateID)

	synthesis, err := moderator.Run(c.Request.Context(), dctx, builder)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrDebateStalled) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	transcript := storage.NewTranscript(synthesis, moderator.Log().Entries())
	if deps.Store != nil {
		if err := deps.Store.SaveTranscript(transcript); err != nil {
			log.Printf("Failed to persist transcript %s: %v", transcript.TranscriptID, err)
		}
	}

	c.JSON(http.StatusOK, synthesis)
}

// BuildRoster assigns a backend to each requested role and produces the
// moderator roster in request order.
func BuildRoster(r *router.Router, agents []string, complexity, budget float64) []ai.AgentSpec {
	roles := make([]router.Role, len(agents))
	for i, agent := range agents {
		roles[i] = router.Role(agent)
	}

	var assignments map[router.Role]string
	if budget > 0 {
		assignments = r.OptimizeAssignments(roles, complexity, budget)
	} else {
		assignments = make(map[router.Role]string, len(roles))
		for _, role := range roles {
			assignments[role] = r.Assign(role, complexity, 0)
		}
	}

	roster := make([]ai.AgentSpec, len(agents))
	for i, agent := range agents {
		roster[i] = ai.AgentSpec{
			RoleID:  agent,
			Name:    agent,
			Stance:  stanceFor(agent),
			Backend: assignments[router.Role(agent)],
		}
	}
	return roster
}

func stanceFor(roleID string) string {
	switch router.Role(roleID) {
	case router.RoleOptimistAnalyst:
		return "optimistic, growth-focused"
	case router.RolePessimistCritic:
		return "critical, risk-focused"
	case router.RoleEthicalAuditor:
		return "fairness and bias auditing"
	case router.RoleDataDetective:
		return "evidence-first data analysis"
	case router.RoleSynthesisModerator:
		return "integrative, consensus-seeking"
	default:
		return ""
	}
}

// ListDebates returns stored transcript summaries plus active session ids.
func ListDebates(c *gin.Context) {
	var summaries []storage.Summary
	if deps.Store != nil {
		var err error
		summaries, err = deps.Store.ListSummaries()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"active":    registry.ActiveIDs(),
		"completed": summaries,
	})
}

// GetDebate returns the full transcript for a debate id.
func GetDebate(c *gin.Context) {
	transcript, ok := loadTranscript(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, transcript)
}

// GetDebateReport returns just the consensus report.
func GetDebateReport(c *gin.Context) {
	transcript, ok := loadTranscript(c)
	if !ok {
		return
	}
	if transcript.Synthesis == nil || transcript.Synthesis.ConsensusReport == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No consensus report for this debate"})
		return
	}
	c.JSON(http.StatusOK, transcript.Synthesis.ConsensusReport)
}

// GetDebateBias returns just the fairness summary.
func GetDebateBias(c *gin.Context) {
	transcript, ok := loadTranscript(c)
	if !ok {
		return
	}
	if transcript.Synthesis == nil || transcript.Synthesis.BiasReport == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No bias report for this debate"})
		return
	}
	c.JSON(http.StatusOK, transcript.Synthesis.BiasReport)
}

// GetRouterUsage returns the router's usage and cost-efficiency report.
func GetRouterUsage(c *gin.Context) {
	c.JSON(http.StatusOK, deps.Router.UsageReport())
}

// Health is a basic liveness endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func loadTranscript(c *gin.Context) (*storage.Transcript, bool) {
	if deps.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Transcript storage not configured"})
		return nil, false
	}
	transcript, err := deps.Store.GetTranscript(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
		return nil, false
	}
	return transcript, true
}
