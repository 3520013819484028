package ai

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	serp "github.com/ericgreene/go-serp"
)

// SearchResult represents a web search result
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// SearchConfig holds configuration for web search
type SearchConfig struct {
	MaxResults int
	SafeSearch bool
}

// DefaultSearchConfig returns standard search configuration
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxResults: 5,
		SafeSearch: true,
	}
}

// researchContext runs a web search over the debate question embedded in the
// prompt and formats the findings as supplementary context. Best effort: any
// failure returns an empty string.
func researchContext(ctx context.Context, prompt string) string {
	query := extractQuestion(prompt)
	if query == "" {
		return ""
	}

	results, err := performWebSearch(query, DefaultSearchConfig())
	if err != nil || len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Relevant research findings:\n")
	for _, result := range results {
		fmt.Fprintf(&b, "- %s\n  %s\n", result.Title, result.Snippet)
	}
	return b.String()
}

// extractQuestion pulls the debate question line out of a moderator prompt.
func extractQuestion(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		if rest, ok := strings.CutPrefix(line, "Question: "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

func performWebSearch(query string, config SearchConfig) ([]SearchResult, error) {
	apiKey := os.Getenv("SERP_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SERP_API_KEY not set")
	}

	parameter := map[string]string{
		"q":   query,
		"key": apiKey,
		"num": strconv.Itoa(config.MaxResults),
	}
	if config.SafeSearch {
		parameter["safe"] = "active"
	}

	queryResponse := serp.NewGoogleSearch(parameter)
	results, err := queryResponse.GetJSON()
	if err != nil {
		return nil, err
	}

	var searchResults []SearchResult
	for _, result := range results.OrganicResults {
		searchResults = append(searchResults, SearchResult{
			Title:   result.Title,
			Snippet: result.Snippet,
			Link:    result.Link,
		})
	}

	return searchResults, nil
}
