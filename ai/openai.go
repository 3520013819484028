package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/symposium-labs/symposium/core"
)

// LLMConfig holds configuration for LLM interactions
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultLLMConfig returns standard LLM configuration
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       openai.GPT3Dot5Turbo,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// OpenAIInvoker calls the OpenAI chat API for each agent turn. Without an
// API key it degrades to deterministic mock responses so debates still run
// end to end.
type OpenAIInvoker struct {
	client   *openai.Client
	config   LLMConfig
	research bool
}

// NewOpenAIInvoker builds an invoker from the environment. Research is
// enabled only when a SERP_API_KEY is present.
func NewOpenAIInvoker(config LLMConfig) *OpenAIInvoker {
	inv := &OpenAIInvoker{config: config}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, using mock responses")
	} else {
		inv.client = openai.NewClient(apiKey)
	}

	if os.Getenv("SERP_API_KEY") == "" {
		log.Println("Warning: SERP_API_KEY not set, web research will be disabled")
	} else {
		inv.research = true
	}

	return inv
}

// Invoke sends the prompt for one agent turn and parses the structured
// response. Errors propagate to the moderator, which skips the agent for the
// round.
func (inv *OpenAIInvoker) Invoke(ctx context.Context, roleID, prompt string, session core.SessionStore) (Response, error) {
	if inv.client == nil {
		return mockResponse(roleID, prompt), nil
	}

	if inv.research {
		if findings := researchContext(ctx, prompt); findings != "" {
			prompt = findings + "\n" + prompt
		}
	}

	resp, err := inv.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: inv.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are the %s agent in a structured adversarial debate. "+
					"Respond with JSON: {\"text\": ..., \"evidence\": [...], \"confidence\": 0-1}.", roleID),
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   inv.config.MaxTokens,
		Temperature: inv.config.Temperature,
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: %s: %v", core.ErrAgentUnavailable, roleID, err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("%w: %s: empty completion", core.ErrAgentUnavailable, roleID)
	}

	return parseResponse(resp.Choices[0].Message.Content), nil
}

// parseResponse accepts either the structured JSON contract or free text
// from models that ignore the format instruction.
func parseResponse(content string) Response {
	content = strings.TrimSpace(content)

	var parsed Response
	if err := json.Unmarshal([]byte(content), &parsed); err == nil && parsed.Text != "" {
		return parsed
	}

	// Some models wrap JSON in a code fence.
	if stripped := stripCodeFence(content); stripped != content {
		if err := json.Unmarshal([]byte(stripped), &parsed); err == nil && parsed.Text != "" {
			return parsed
		}
	}

	return Response{Text: content}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
