// Package router maps debate agent roles to concrete model backends,
// honoring capability thresholds, budget and availability, with
// deterministic fallback on failure.
package router

import (
	"log"
	"sort"
	"sync"

	"github.com/symposium-labs/symposium/core"
)

// AvailabilityChecker reports whether a backend is currently reachable.
// Production wiring should back this with a real liveness or circuit-breaker
// signal; tests inject deterministic checkers.
type AvailabilityChecker interface {
	Available(model string) bool
}

// StaticAvailability is an allow-list checker. An empty list means every
// backend is considered available.
type StaticAvailability []string

func (s StaticAvailability) Available(model string) bool {
	if len(s) == 0 {
		return true
	}
	for _, m := range s {
		if m == model {
			return true
		}
	}
	return false
}

// Router selects backends per role and tracks resolved assignments.
type Router struct {
	profiles     map[string]Profile
	preferences  map[Role]RolePreference
	availability AvailabilityChecker

	mu    sync.Mutex
	usage map[Role]map[string]int
}

// New builds a Router over static tables. Nil tables use the defaults; a nil
// checker treats every backend as available.
func New(profiles map[string]Profile, preferences map[Role]RolePreference, availability AvailabilityChecker) *Router {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	if preferences == nil {
		preferences = DefaultRolePreferences()
	}
	if availability == nil {
		availability = StaticAvailability(nil)
	}
	return &Router{
		profiles:     profiles,
		preferences:  preferences,
		availability: availability,
		usage:        make(map[Role]map[string]int),
	}
}

// Route selects the best backend for a role given task complexity in [0,1]
// and an optional budget (0 means unconstrained). Candidates come from the
// role's preferred list, filtered by a capability floor of
// 0.6 + 0.3*complexity on the role's primary skill; the highest-capability
// survivor wins. When nothing survives, the single cheapest known backend is
// returned. Availability is deliberately not consulted here; see
// ResolveAvailability.
func (r *Router) Route(role Role, complexity float64, budget float64) string {
	prefs, ok := r.preferences[role]
	if !ok {
		return r.cheapestModel()
	}

	minCapability := 0.6 + complexity*0.3

	type candidate struct {
		model      string
		capability float64
	}
	var candidates []candidate
	for _, model := range prefs.PreferredModels {
		profile, ok := r.profiles[model]
		if !ok {
			continue
		}
		capability := profile.Capabilities[prefs.PrimaryCapability]
		if capability < minCapability {
			continue
		}
		if budget > 0 && profile.CostPer1KTokens > budget {
			continue
		}
		candidates = append(candidates, candidate{model, capability})
	}

	if len(candidates) == 0 {
		return r.cheapestModel()
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].capability > candidates[j].capability
	})
	return candidates[0].model
}

// ResolveAvailability walks the chosen backend's fallback chain until an
// available entry is found. An exhausted chain degrades to the universal
// fallback and is logged as a warning, never surfaced as an error.
func (r *Router) ResolveAvailability(model string) string {
	if r.availability.Available(model) {
		return model
	}

	profile, ok := r.profiles[model]
	if ok {
		for _, fallback := range profile.FallbackChain {
			if r.availability.Available(fallback) {
				log.Printf("Backend %s unavailable, using fallback %s", model, fallback)
				return fallback
			}
		}
	}

	log.Printf("Warning: %v for %s, using universal fallback %s", core.ErrRoutingExhausted, model, UniversalFallback)
	return UniversalFallback
}

// Assign routes a role, resolves availability and records the resolved
// assignment in the usage counters.
func (r *Router) Assign(role Role, complexity float64, budget float64) string {
	model := r.ResolveAvailability(r.Route(role, complexity, budget))
	r.trackUsage(role, model)
	return model
}

// OptimizeAssignments allocates backends to several roles within a shared
// budget. Roles are processed in fixed priority order; the remaining budget
// is split evenly across not-yet-assigned roles at each step and decremented
// by the chosen backend's cost, clamped at zero.
func (r *Router) OptimizeAssignments(roles []Role, complexity float64, budgetLimit float64) map[Role]string {
	ordered := make([]Role, 0, len(roles))
	requested := make(map[Role]bool, len(roles))
	for _, role := range roles {
		requested[role] = true
	}
	for _, role := range rolePriority {
		if requested[role] {
			ordered = append(ordered, role)
			requested[role] = false
		}
	}
	for _, role := range roles {
		if requested[role] {
			ordered = append(ordered, role)
			requested[role] = false
		}
	}

	assignments := make(map[Role]string, len(ordered))
	remaining := budgetLimit

	for i, role := range ordered {
		perRole := remaining / float64(len(ordered)-i)

		// Allow some headroom over the even split.
		model := r.Assign(role, complexity, perRole*2)
		assignments[role] = model

		if profile, ok := r.profiles[model]; ok {
			remaining -= profile.CostPer1KTokens
		}
		remaining = max(0, remaining)
	}

	return assignments
}

// CostEstimate prices an assignment set for the given token volume.
func (r *Router) CostEstimate(assignments map[Role]string, tokenEstimate int) map[string]float64 {
	breakdown := make(map[string]float64)
	var total float64
	for role, model := range assignments {
		cost := 0.01
		if profile, ok := r.profiles[model]; ok {
			cost = profile.CostPer1KTokens
		}
		agentCost := cost * float64(tokenEstimate) / 1000.0
		breakdown[string(role)+"_"+model] = agentCost
		total += agentCost
	}
	breakdown["total"] = total
	return breakdown
}

func (r *Router) trackUsage(role Role, model string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usage[role] == nil {
		r.usage[role] = make(map[string]int)
	}
	r.usage[role][model]++
}

func (r *Router) cheapestModel() string {
	cheapest := UniversalFallback
	best := -1.0
	for model, profile := range r.profiles {
		if best < 0 || profile.CostPer1KTokens < best ||
			(profile.CostPer1KTokens == best && model < cheapest) {
			best = profile.CostPer1KTokens
			cheapest = model
		}
	}
	return cheapest
}
