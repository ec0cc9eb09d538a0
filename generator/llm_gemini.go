package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured for Gemini.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiLLM implements LLMClient on Google's generative-ai-go SDK.
type GeminiLLM struct {
	Model       string
	Temperature float64
	MaxTokens   int
	client      *genai.Client
}

func NewGeminiLLMFromConfig(ctx context.Context, cfg *LLMSettings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; set llm.api_key or the llm.api_key_env variable")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	return &GeminiLLM{Model: model, Temperature: temperature(cfg.Temperature), MaxTokens: cfg.MaxTokens, client: client}, nil
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	name := g.Model
	if prompt.Model != "" {
		name = prompt.Model
	}
	model := g.client.GenerativeModel(name)
	model.SetTemperature(float32(g.Temperature))
	if n := maxTokens(g.MaxTokens, prompt); n > 0 {
		model.SetMaxOutputTokens(int32(n))
	}
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// Close releases the underlying gRPC connection.
func (g *GeminiLLM) Close() error {
	return g.client.Close()
}
