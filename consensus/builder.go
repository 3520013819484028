// Package consensus reduces a full debate log into a ranked consensus report
// using Borda count voting weighted by evidence quality.
package consensus

import (
	"fmt"
	"sort"

	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/utils"
)

// Insight is one ranked claim in the final report.
type Insight struct {
	Claim            string   `json:"claim"`
	Confidence       float64  `json:"confidence"`
	SupportingAgents []string `json:"supporting_agents"`
	EvidenceCount    int      `json:"evidence_count"`
}

// Report is the output of one consensus build.
type Report struct {
	ConsensusStrength   float64   `json:"consensus_strength"`
	PrimaryInsights     []Insight `json:"primary_insights"`
	SecondaryInsights   []Insight `json:"secondary_insights"`
	TotalClaimsAnalyzed int       `json:"total_claims_analyzed"`
	AgreementLevel      float64   `json:"agreement_level"`
	Notes               []string  `json:"notes,omitempty"`
}

// Builder implements Borda count voting with evidence weighting. The vote
// and evidence weights are tunables; they must each be in [0,1] and sum to
// at most 1, but are not required to sum to exactly 1.
type Builder struct {
	voteWeight     float64
	evidenceWeight float64
}

// NewBuilder validates the weights and returns a Builder. Zero weights fall
// back to the defaults (vote 0.6, evidence 0.4).
func NewBuilder(voteWeight, evidenceWeight float64) (*Builder, error) {
	if voteWeight == 0 && evidenceWeight == 0 {
		voteWeight, evidenceWeight = 0.6, 0.4
	}
	if voteWeight < 0 || evidenceWeight < 0 || voteWeight+evidenceWeight > 1 {
		return nil, fmt.Errorf("%w: vote weight %.2f and evidence weight %.2f must be non-negative and sum to at most 1",
			core.ErrInvalidConfiguration, voteWeight, evidenceWeight)
	}
	return &Builder{voteWeight: voteWeight, evidenceWeight: evidenceWeight}, nil
}

// BuildConsensus reduces the argument list into a ranked report. It is a
// pure function of its input: identical input ordering yields an identical
// report.
func (b *Builder) BuildConsensus(arguments []core.DebateArgument) *Report {
	claims := extractClaims(arguments)

	for _, claim := range claims {
		borda := bordaScore(claim)
		evidence := evidenceScore(claim.SupportingEvidence)
		claim.FinalScore = b.voteWeight*borda + b.evidenceWeight*evidence
	}

	return assembleReport(claims)
}

// bordaScore ranks a claim's voters by confidence descending; each voter's
// points are (total_voters - rank), ties sharing the first matching
// position. The score is the confidence-weighted point sum averaged over
// voters.
func bordaScore(claim *Claim) float64 {
	totalVoters := len(claim.AgentVotes)
	if totalVoters == 0 {
		return 0
	}

	sorted := make([]float64, 0, totalVoters)
	for _, confidence := range claim.AgentVotes {
		sorted = append(sorted, confidence)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var total float64
	for _, confidence := range claim.AgentVotes {
		rank := 0
		for i, v := range sorted {
			if v == confidence {
				rank = i
				break
			}
		}
		points := float64(totalVoters - rank)
		total += points * confidence
	}

	return total / float64(totalVoters)
}

// evidenceScore averages per-item quality: 0.7*confidence plus 0.3 of the
// data-point count normalized to 10 items.
func evidenceScore(evidence []core.Evidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var total float64
	for _, item := range evidence {
		dataQuality := min(1.0, float64(len(item.DataPoints))/10.0)
		total += item.Confidence*0.7 + dataQuality*0.3
	}
	return total / float64(len(evidence))
}

// assembleReport sorts claims by final score and bands them into primary and
// secondary insights.
func assembleReport(claims []*Claim) *Report {
	sorted := make([]*Claim, len(claims))
	copy(sorted, claims)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinalScore > sorted[j].FinalScore
	})

	var topScore float64
	if len(sorted) > 0 {
		topScore = sorted[0].FinalScore
	}

	var primary, secondary []Insight
	for _, claim := range sorted {
		switch {
		case claim.FinalScore >= topScore*0.8:
			if len(primary) < 3 {
				primary = append(primary, toInsight(claim))
			}
		case claim.FinalScore >= topScore*0.5:
			if len(secondary) < 5 {
				secondary = append(secondary, toInsight(claim))
			}
		}
	}

	return &Report{
		ConsensusStrength:   min(1.0, topScore/10.0),
		PrimaryInsights:     primary,
		SecondaryInsights:   secondary,
		TotalClaimsAnalyzed: len(claims),
		AgreementLevel:      agreementLevel(sorted),
	}
}

func toInsight(claim *Claim) Insight {
	agents := make([]string, 0, len(claim.AgentVotes))
	for agent := range claim.AgentVotes {
		agents = append(agents, agent)
	}
	sort.Strings(agents)
	return Insight{
		Claim:            claim.Statement,
		Confidence:       claim.FinalScore,
		SupportingAgents: agents,
		EvidenceCount:    len(claim.SupportingEvidence),
	}
}

// agreementLevel averages, over claims with at least two voters, the
// dispersion-penalized agreement max(0, 1 - stdev/mean). Claims whose vote
// set has a zero mean contribute 0.
func agreementLevel(claims []*Claim) float64 {
	var total float64
	var counted int
	for _, claim := range claims {
		if len(claim.AgentVotes) < 2 {
			continue
		}
		counted++
		votes := make([]float64, 0, len(claim.AgentVotes))
		for _, v := range claim.AgentVotes {
			votes = append(votes, v)
		}
		mean := utils.Mean(votes)
		if mean <= 0 {
			continue
		}
		total += max(0, 1.0-utils.StdDev(votes)/mean)
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
