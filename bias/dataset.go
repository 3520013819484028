package bias

import "strings"

// sensitiveFields is the fixed list of field-name fragments that make a
// fairness pass over a dataset meaningful.
var sensitiveFields = []string{
	"gender", "sex", "age", "region", "country", "ethnicity",
	"income", "tier", "segment", "race", "religion", "location",
}

// DatasetNeedsFairnessPass reports whether any field name of the handed-over
// query result matches the sensitive-field list (case-insensitive substring
// match).
func DatasetNeedsFairnessPass(fieldNames []string) bool {
	for _, name := range fieldNames {
		lower := strings.ToLower(name)
		for _, sensitive := range sensitiveFields {
			if strings.Contains(lower, sensitive) {
				return true
			}
		}
	}
	return false
}
