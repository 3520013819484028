// Package bias flags likely cognitive, statistical, temporal and fairness
// issues in debate arguments, both per-argument and aggregated per-agent.
package bias

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/symposium-labs/symposium/core"
	"github.com/symposium-labs/symposium/utils"
)

const (
	// keywordWeight is the base contribution per keyword hit, scaled by
	// pattern severity.
	keywordWeight = 0.2

	// detectionThreshold is the accumulated score a pattern must exceed
	// before it counts as fired.
	detectionThreshold = 0.1
)

var (
	confirmationPhrases = []string{
		"this proves", "clearly shows", "confirms our hypothesis",
		"as we suspected", "validates our approach", "supports our view",
	}
	counterIndicators = []string{"however", "but", "although", "despite", "alternatively"}

	sampleIssuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s*samples?\b`),
		regexp.MustCompile(`(?i)\blimited\s+data\b`),
		regexp.MustCompile(`(?i)\bsmall\s+dataset\b`),
		regexp.MustCompile(`(?i)\bfew\s+cases\b`),
	}

	demographicTerms = []string{
		"urban", "rural", "city", "suburban",
		"young", "old", "elderly", "millennial",
		"male", "female", "men", "women",
	}
	demographicGeneralizations = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(all|most|many)\s+(` + strings.Join(demographicTerms, "|") + `)\b`),
		regexp.MustCompile(`(?i)\b(` + strings.Join(demographicTerms, "|") + `)\s+(always|never|typically)\b`),
	}
)

// Violation records a single argument whose bias score exceeded the fairness
// threshold's complement.
type Violation struct {
	Agent     string   `json:"agent"`
	Argument  string   `json:"argument"` // truncated to 200 chars
	BiasScore float64  `json:"bias_score"`
	Patterns  []string `json:"patterns"`
	Timestamp int64    `json:"timestamp"`
}

// AgentProfile aggregates bias findings for one agent across a debate.
type AgentProfile struct {
	TotalBiasScore   float64  `json:"total_bias_score"`
	ArgumentCount    int      `json:"argument_count"`
	DetectedPatterns []string `json:"detected_patterns"`
}

// Report is the whole-debate fairness summary.
type Report struct {
	OverallBiasScore  float64                  `json:"overall_bias_score"`
	BalanceScore      float64                  `json:"balance_score"`
	DiversityScore    float64                  `json:"diversity_score"`
	FairnessThreshold float64                  `json:"fairness_threshold"`
	Violations        []Violation              `json:"violations"`
	AgentProfiles     map[string]*AgentProfile `json:"agent_profiles"`
	Recommendations   []string                 `json:"recommendations"`
}

// Detector scans arguments against a fixed pattern catalog.
type Detector struct {
	fairnessThreshold float64
	patterns          []Pattern
}

// NewDetector builds a detector over the given catalog. A nil catalog uses
// DefaultPatterns; threshold 0 uses the default 0.85.
func NewDetector(fairnessThreshold float64, patterns []Pattern) *Detector {
	if fairnessThreshold == 0 {
		fairnessThreshold = 0.85
	}
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Detector{
		fairnessThreshold: fairnessThreshold,
		patterns:          patterns,
	}
}

// ScoreArgument analyzes a single argument text and returns its bias score
// (capped at 1.0) plus the names of the patterns that fired.
func (d *Detector) ScoreArgument(text string) (float64, []string) {
	lower := strings.ToLower(text)
	var detected []string
	var total float64

	for _, pattern := range d.patterns {
		var score float64
		for _, keyword := range pattern.Keywords {
			if strings.Contains(lower, keyword) {
				score += pattern.Severity * keywordWeight
			}
		}

		switch pattern.Name {
		case PatternConfirmation:
			score += detectConfirmation(lower)
		case PatternSample:
			score += detectSampleIssues(lower)
		case PatternDemographic:
			score += detectDemographicGeneralization(lower)
		}

		if score > detectionThreshold {
			detected = append(detected, pattern.Name)
			total += min(score, pattern.Severity)
		}
	}

	return min(total, 1.0), detected
}

// AnalyzeDebate runs a whole-debate bias pass over the argument list.
func (d *Detector) AnalyzeDebate(arguments []core.DebateArgument) *Report {
	profiles := make(map[string]*AgentProfile)
	var violations []Violation

	for _, arg := range arguments {
		score, patterns := d.ScoreArgument(arg.Text)

		profile, ok := profiles[arg.AgentID]
		if !ok {
			profile = &AgentProfile{}
			profiles[arg.AgentID] = profile
		}
		profile.TotalBiasScore += score
		profile.ArgumentCount++
		profile.DetectedPatterns = append(profile.DetectedPatterns, patterns...)

		if score > 1.0-d.fairnessThreshold {
			violations = append(violations, Violation{
				Agent:     arg.AgentID,
				Argument:  truncate(arg.Text, 200),
				BiasScore: score,
				Patterns:  patterns,
				Timestamp: arg.Timestamp,
			})
		}
	}

	overall := overallBias(profiles)
	return &Report{
		OverallBiasScore:  overall,
		BalanceScore:      balanceScore(profiles),
		DiversityScore:    diversityScore(arguments),
		FairnessThreshold: d.fairnessThreshold,
		Violations:        violations,
		AgentProfiles:     profiles,
		Recommendations:   recommendations(overall, violations, profiles),
	}
}

// detectConfirmation scores confirmation-bias phrasing, plus a bonus when no
// counter-argument connective appears anywhere in the text. Capped at 0.6.
func detectConfirmation(text string) float64 {
	var score float64
	for _, phrase := range confirmationPhrases {
		if strings.Contains(text, phrase) {
			score += 0.15
		}
	}

	hasCounter := false
	for _, indicator := range counterIndicators {
		if strings.Contains(text, indicator) {
			hasCounter = true
			break
		}
	}
	if !hasCounter {
		score += 0.1
	}

	return min(score, 0.6)
}

// detectSampleIssues scores small-sample language. Capped at 0.5.
func detectSampleIssues(text string) float64 {
	var score float64
	for _, re := range sampleIssuePatterns {
		if re.MatchString(text) {
			score += 0.2
		}
	}
	return min(score, 0.5)
}

// detectDemographicGeneralization scores "all/most/many <group>" and
// "<group> always/never/typically" constructions. Capped at 0.8.
func detectDemographicGeneralization(text string) float64 {
	var score float64
	for _, re := range demographicGeneralizations {
		if re.MatchString(text) {
			score += 0.3
		}
	}
	return min(score, 0.8)
}

// overallBias is the argument-weighted mean of per-agent average bias.
func overallBias(profiles map[string]*AgentProfile) float64 {
	var weighted float64
	var total int
	for _, profile := range profiles {
		if profile.ArgumentCount > 0 {
			avg := profile.TotalBiasScore / float64(profile.ArgumentCount)
			weighted += avg * float64(profile.ArgumentCount)
			total += profile.ArgumentCount
		}
	}
	if total == 0 {
		return 0
	}
	return weighted / float64(total)
}

// balanceScore converts the coefficient of variation of per-agent argument
// counts to a 0-1 scale where 1 is perfectly balanced. Requires at least two
// agents.
func balanceScore(profiles map[string]*AgentProfile) float64 {
	if len(profiles) < 2 {
		return 0
	}
	var counts []float64
	for _, profile := range profiles {
		counts = append(counts, float64(profile.ArgumentCount))
	}
	if utils.Mean(counts) == 0 {
		return 0
	}
	return max(0, 1.0-utils.CoefficientOfVariation(counts))
}

// diversityScore combines argument-length spread with cross-agent vocabulary
// divergence: 0.3*length_diversity + 0.7*vocabulary_diversity.
func diversityScore(arguments []core.DebateArgument) float64 {
	if len(arguments) < 2 {
		return 0
	}

	var lengths []float64
	for _, arg := range arguments {
		lengths = append(lengths, float64(len(strings.Fields(arg.Text))))
	}
	var lengthDiversity float64
	if utils.Mean(lengths) > 0 {
		lengthDiversity = min(1.0, utils.CoefficientOfVariation(lengths))
	}

	vocabularies := make(map[string]map[string]bool)
	for _, arg := range arguments {
		vocab, ok := vocabularies[arg.AgentID]
		if !ok {
			vocab = make(map[string]bool)
			vocabularies[arg.AgentID] = vocab
		}
		for _, word := range strings.Fields(strings.ToLower(arg.Text)) {
			vocab[word] = true
		}
	}

	var vocabDiversity float64
	if len(vocabularies) > 1 {
		var agents []string
		for agent := range vocabularies {
			agents = append(agents, agent)
		}
		var overlaps []float64
		for i := 0; i < len(agents); i++ {
			for j := i + 1; j < len(agents); j++ {
				overlaps = append(overlaps, jaccard(vocabularies[agents[i]], vocabularies[agents[j]]))
			}
		}
		vocabDiversity = 1.0 - utils.Mean(overlaps)
	}

	return lengthDiversity*0.3 + vocabDiversity*0.7
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	for word := range a {
		if b[word] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// recommendations emits rule-based advisories for the report.
func recommendations(overall float64, violations []Violation, profiles map[string]*AgentProfile) []string {
	var recs []string

	if overall > 0.3 {
		recs = append(recs, "High bias detected. Consider additional evidence gathering and cross-validation.")
	}

	if len(violations) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Found %d fairness violations. Review flagged arguments for demographic or statistical bias.",
			len(violations)))
	}

	if len(profiles) > 1 {
		minCount, maxCount := -1, 0
		for _, profile := range profiles {
			if minCount == -1 || profile.ArgumentCount < minCount {
				minCount = profile.ArgumentCount
			}
			if profile.ArgumentCount > maxCount {
				maxCount = profile.ArgumentCount
			}
		}
		if maxCount > 2*minCount {
			recs = append(recs, "Unbalanced agent participation detected. Encourage more input from less active agents.")
		}
	}

	frequency := make(map[string]int)
	for _, profile := range profiles {
		for _, pattern := range profile.DetectedPatterns {
			frequency[pattern]++
		}
	}
	var common []string
	for pattern, count := range frequency {
		if count > len(profiles) {
			common = append(common, pattern)
		}
	}
	sort.Strings(common)
	if len(common) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Common bias patterns detected: %s. Consider structured counter-argument protocols.",
			strings.Join(common, ", ")))
	}

	if len(recs) == 0 {
		recs = append(recs, "Bias levels within acceptable thresholds. Continue current debate protocols.")
	}

	return recs
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
