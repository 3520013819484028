package router

// Skill names scored in a model profile.
const (
	SkillReasoning     = "reasoning"
	SkillEthics        = "ethics"
	SkillBiasDetection = "bias_detection"
	SkillDataAnalysis  = "data_analysis"
	SkillDebate        = "debate"
)

// Role identifies a debate agent role for routing purposes.
type Role string

const (
	RoleDataDetective      Role = "data_detective"
	RoleOptimistAnalyst    Role = "optimist_analyst"
	RolePessimistCritic    Role = "pessimist_critic"
	RoleEthicalAuditor     Role = "ethical_auditor"
	RoleSynthesisModerator Role = "synthesis_moderator"
	RoleOrchestrator       Role = "orchestrator"
)

// UniversalFallback is returned when every backend in a fallback chain is
// unavailable. It must always exist in the profile table.
const UniversalFallback = "gemini-flash"

// Profile is the static per-backend record: cost, capability scores per
// skill, and the ordered fallback chain tried when the backend is down.
// Profiles are immutable configuration loaded once at startup.
type Profile struct {
	CostPer1KTokens float64
	Capabilities    map[string]float64
	FallbackChain   []string
}

// RolePreference names a role's primary skill and its ordered backend
// shortlist.
type RolePreference struct {
	PrimaryCapability string
	PreferredModels   []string
}

// DefaultProfiles returns the standard backend capability/cost table.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"gpt-4": {
			CostPer1KTokens: 0.06,
			Capabilities: map[string]float64{
				SkillReasoning:     0.95,
				SkillEthics:        0.98,
				SkillBiasDetection: 0.92,
				SkillDataAnalysis:  0.88,
				SkillDebate:        0.90,
			},
			FallbackChain: []string{"claude-3-opus", "claude-3-sonnet", "gemini-1.5-pro"},
		},
		"claude-3-opus": {
			CostPer1KTokens: 0.075,
			Capabilities: map[string]float64{
				SkillReasoning:     0.93,
				SkillEthics:        0.85,
				SkillBiasDetection: 0.88,
				SkillDataAnalysis:  0.85,
				SkillDebate:        0.95,
			},
			FallbackChain: []string{"gpt-4", "claude-3-sonnet", "gemini-1.5-pro"},
		},
		"grok-1": {
			CostPer1KTokens: 0.05,
			Capabilities: map[string]float64{
				SkillReasoning:     0.88,
				SkillEthics:        0.75,
				SkillBiasDetection: 0.80,
				SkillDataAnalysis:  0.82,
				SkillDebate:        0.92,
			},
			FallbackChain: []string{"claude-3-sonnet", "gemini-1.5-pro", "gemini-pro"},
		},
		"claude-3-sonnet": {
			CostPer1KTokens: 0.015,
			Capabilities: map[string]float64{
				SkillReasoning:     0.85,
				SkillEthics:        0.80,
				SkillBiasDetection: 0.75,
				SkillDataAnalysis:  0.88,
				SkillDebate:        0.85,
			},
			FallbackChain: []string{"gemini-1.5-pro", "claude-3-haiku", "gemini-pro"},
		},
		"gpt-3.5-turbo": {
			CostPer1KTokens: 0.002,
			Capabilities: map[string]float64{
				SkillReasoning:     0.75,
				SkillEthics:        0.70,
				SkillBiasDetection: 0.65,
				SkillDataAnalysis:  0.70,
				SkillDebate:        0.75,
			},
		},
		"claude-3-haiku": {
			CostPer1KTokens: 0.0025,
		},
		"gemini-1.5-pro": {
			CostPer1KTokens: 0.007,
			Capabilities: map[string]float64{
				SkillReasoning:     0.90,
				SkillEthics:        0.75,
				SkillBiasDetection: 0.78,
				SkillDataAnalysis:  0.95,
				SkillDebate:        0.80,
			},
			FallbackChain: []string{"gemini-pro", "claude-3-sonnet", "gemini-flash"},
		},
		"gemini-pro": {
			CostPer1KTokens: 0.0005,
			Capabilities: map[string]float64{
				SkillReasoning:     0.82,
				SkillEthics:        0.70,
				SkillBiasDetection: 0.72,
				SkillDataAnalysis:  0.90,
				SkillDebate:        0.75,
			},
			FallbackChain: []string{"gemini-flash", "gemini-1.5-flash", "gpt-3.5-turbo"},
		},
		"gemini-flash": {
			CostPer1KTokens: 0.0002,
			Capabilities: map[string]float64{
				SkillReasoning:     0.75,
				SkillEthics:        0.65,
				SkillBiasDetection: 0.68,
				SkillDataAnalysis:  0.85,
				SkillDebate:        0.70,
			},
			FallbackChain: []string{"gemini-1.5-flash", "gemini-pro", "gpt-3.5-turbo"},
		},
		"gemini-1.5-flash": {
			CostPer1KTokens: 0.0001,
		},
	}
}

// DefaultRolePreferences returns the standard role-to-backend shortlists.
func DefaultRolePreferences() map[Role]RolePreference {
	return map[Role]RolePreference{
		RoleDataDetective: {
			PrimaryCapability: SkillDataAnalysis,
			PreferredModels:   []string{"gemini-1.5-pro", "gemini-pro", "claude-3-sonnet"},
		},
		RoleOptimistAnalyst: {
			PrimaryCapability: SkillReasoning,
			PreferredModels:   []string{"claude-3-sonnet", "claude-3-opus", "gemini-1.5-pro"},
		},
		RolePessimistCritic: {
			PrimaryCapability: SkillDebate,
			PreferredModels:   []string{"grok-1", "claude-3-opus", "claude-3-sonnet"},
		},
		RoleEthicalAuditor: {
			PrimaryCapability: SkillEthics,
			PreferredModels:   []string{"gpt-4", "claude-3-opus", "claude-3-sonnet"},
		},
		RoleSynthesisModerator: {
			PrimaryCapability: SkillReasoning,
			PreferredModels:   []string{"gemini-1.5-pro", "claude-3-opus", "gpt-4"},
		},
		RoleOrchestrator: {
			PrimaryCapability: SkillReasoning,
			PreferredModels:   []string{"gemini-1.5-pro", "claude-3-opus", "gemini-pro"},
		},
	}
}

// rolePriority orders roles for budget allocation. Fairness- and
// consensus-critical roles are funded first.
var rolePriority = []Role{
	RoleEthicalAuditor,
	RoleSynthesisModerator,
	RoleDataDetective,
	RolePessimistCritic,
	RoleOptimistAnalyst,
	RoleOrchestrator,
}
