package consensus

import (
	"strings"

	"github.com/symposium-labs/symposium/core"
)

// minClaimLength filters out sentence fragments too short to be a votable
// statement.
const minClaimLength = 20

// Claim is a deduplicated statement extracted from one or more arguments.
// Claims live only for the duration of one consensus build.
type Claim struct {
	Statement          string             `json:"statement"`
	SupportingEvidence []core.Evidence    `json:"supporting_evidence"`
	AgentVotes         map[string]float64 `json:"agent_votes"` // agent_id -> confidence
	FinalScore         float64            `json:"final_score"`
}

// extractClaims splits argument texts into candidate claims, merging votes
// into an existing claim when the statement matches exactly after trimming.
// A repeated statement from the same agent overwrites that agent's earlier
// vote (last write wins).
func extractClaims(arguments []core.DebateArgument) []*Claim {
	var claims []*Claim

	for _, arg := range arguments {
		sentences := strings.Split(arg.Text, ". ")
		for _, sentence := range sentences {
			statement := strings.TrimSpace(sentence)
			if len(statement) <= minClaimLength {
				continue
			}

			if existing := findMatchingClaim(claims, statement); existing != nil {
				existing.AgentVotes[arg.AgentID] = arg.Confidence
				continue
			}

			claims = append(claims, &Claim{
				Statement:          statement,
				SupportingEvidence: extractEvidence(arg),
				AgentVotes:         map[string]float64{arg.AgentID: arg.Confidence},
			})
		}
	}

	return claims
}

// findMatchingClaim uses exact statement match after trimming. Fuzzy
// near-duplicate merging is intentionally not attempted.
func findMatchingClaim(claims []*Claim, statement string) *Claim {
	for _, claim := range claims {
		if claim.Statement == statement {
			return claim
		}
	}
	return nil
}

// extractEvidence lifts an argument's citations into scored Evidence records
// owned by the claim.
func extractEvidence(arg core.DebateArgument) []core.Evidence {
	var evidence []core.Evidence
	for _, source := range arg.Evidence {
		evidence = append(evidence, core.Evidence{
			Source:      source,
			Confidence:  arg.Confidence,
			AgentSource: arg.AgentID,
		})
	}
	return evidence
}
