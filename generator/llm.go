package generator

import "context"

// LLMClient abstracts the chat-completion backend so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Default sampling settings for adaptation requests.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// LLMSettings is the provider-neutral configuration handed to a client constructor.
type LLMSettings struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	// Temperature is nil for DefaultTemperature; zero is a valid setting.
	Temperature *float64
	// MaxTokens replaces the limit of prompts that carry one when > 0.
	// Uncapped prompts stay uncapped.
	MaxTokens int
}

func temperature(t *float64) float64 {
	if t == nil {
		return DefaultTemperature
	}
	return *t
}

func maxTokens(override int, p Prompt) int {
	if override > 0 && p.MaxTokens > 0 {
		return override
	}
	return p.MaxTokens
}
