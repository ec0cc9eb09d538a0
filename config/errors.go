package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	ErrUnknownProvider    = errors.New("llm provider not supported (use openai, deepseek, gemini or mock)")
	ErrBaseURLRequired    = errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
	ErrInvalidTemperature = errors.New("llm temperature must be between 0 and 2")
	ErrInvalidMaxTokens   = errors.New("llm max_tokens must not be negative")
	ErrInvalidTimeout     = errors.New("request timeout must be positive")
	ErrInvalidBatchSize   = errors.New("batch size must be positive")
)
