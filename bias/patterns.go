package bias

// Pattern is a static catalog entry describing one detectable bias. The
// catalog is process-wide immutable configuration, injected into the
// detector rather than looked up ambiently.
type Pattern struct {
	Name        string
	Description string
	Keywords    []string
	Severity    float64 // 0-1 weight
	Category    string
}

// Pattern names.
const (
	PatternConfirmation = "confirmation_bias"
	PatternAnchoring    = "anchoring_bias"
	PatternAvailability = "availability_bias"
	PatternDemographic  = "demographic_bias"
	PatternSample       = "sample_bias"
	PatternTemporal     = "temporal_bias"
)

// DefaultPatterns returns the standard catalog of six bias patterns.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:        PatternConfirmation,
			Description: "Selectively interpreting evidence to confirm preexisting beliefs",
			Keywords:    []string{"confirms", "validates", "supports my view", "as expected", "obviously"},
			Severity:    0.7,
			Category:    "cognitive",
		},
		{
			Name:        PatternAnchoring,
			Description: "Over-relying on first piece of information encountered",
			Keywords:    []string{"initial data shows", "first analysis", "starting point", "baseline"},
			Severity:    0.6,
			Category:    "cognitive",
		},
		{
			Name:        PatternAvailability,
			Description: "Overestimating likelihood of events with greater availability in memory",
			Keywords:    []string{"recently", "just happened", "current trend", "latest"},
			Severity:    0.5,
			Category:    "cognitive",
		},
		{
			Name:        PatternDemographic,
			Description: "Unfair treatment based on demographic characteristics",
			Keywords:    []string{"urban vs rural", "age group", "gender", "ethnicity", "location"},
			Severity:    0.9,
			Category:    "fairness",
		},
		{
			Name:        PatternSample,
			Description: "Drawing conclusions from unrepresentative samples",
			Keywords:    []string{"small sample", "limited data", "subset", "not representative"},
			Severity:    0.8,
			Category:    "statistical",
		},
		{
			Name:        PatternTemporal,
			Description: "Bias due to time-specific factors not representative of general trends",
			Keywords:    []string{"seasonal", "temporary", "one-time event", "anomaly"},
			Severity:    0.6,
			Category:    "temporal",
		},
	}
}
