package router

import "sort"

// ModelUsage is one entry in the most-used ranking.
type ModelUsage struct {
	Model string `json:"model"`
	Calls int    `json:"calls"`
}

// UsageReport summarizes resolved assignments and cost efficiency.
type UsageReport struct {
	UsageByRole    map[Role]map[string]int `json:"usage_by_role"`
	TotalCalls     int                     `json:"total_calls"`
	MostUsedModels []ModelUsage            `json:"most_used_models"`
	CostEfficiency map[string]float64      `json:"cost_efficiency"` // capability per cost
}

// UsageReport builds a snapshot of usage counters plus a capability-per-cost
// efficiency figure (capability averaged over skills) for every model used.
func (r *Router) UsageReport() UsageReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	byRole := make(map[Role]map[string]int, len(r.usage))
	modelTotals := make(map[string]int)
	total := 0
	for role, models := range r.usage {
		byRole[role] = make(map[string]int, len(models))
		for model, count := range models {
			byRole[role][model] = count
			modelTotals[model] += count
			total += count
		}
	}

	ranked := make([]ModelUsage, 0, len(modelTotals))
	for model, calls := range modelTotals {
		ranked = append(ranked, ModelUsage{Model: model, Calls: calls})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Calls != ranked[j].Calls {
			return ranked[i].Calls > ranked[j].Calls
		}
		return ranked[i].Model < ranked[j].Model
	})

	efficiency := make(map[string]float64)
	for model := range modelTotals {
		profile, ok := r.profiles[model]
		if !ok || len(profile.Capabilities) == 0 || profile.CostPer1KTokens <= 0 {
			continue
		}
		var sum float64
		for _, capability := range profile.Capabilities {
			sum += capability
		}
		avg := sum / float64(len(profile.Capabilities))
		efficiency[model] = avg / profile.CostPer1KTokens
	}

	return UsageReport{
		UsageByRole:    byRole,
		TotalCalls:     total,
		MostUsedModels: ranked,
		CostEfficiency: efficiency,
	}
}
