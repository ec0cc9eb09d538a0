// Package config loads and validates the application configuration.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"

	"text_differentiator/generator"
)

// Default configuration values.
const (
	AppName = "textdiff"

	DefaultProvider       = "openai"
	DefaultModel          = "gpt-4o-mini"
	DefaultServerAddr     = ":8080"
	DefaultRequestTimeout = 60 * time.Second
	DefaultAPIKeyEnv      = "OPENAI_API_KEY"
	GeminiAPIKeyEnv       = "GEMINI_API_KEY"
	DeepSeekAPIKeyEnv     = "DEEPSEEK_API_KEY"
	DefaultBatchSize      = 4
)

// DefaultModels are the models a teacher may pick from.
var DefaultModels = []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"}

// providerDefaults fill the LLM fields a config file leaves empty.
type providerDefaults struct {
	model  string
	keyEnv string
	models []string
}

var providers = map[string]providerDefaults{
	"openai":   {DefaultModel, DefaultAPIKeyEnv, DefaultModels},
	"deepseek": {"deepseek-chat", DeepSeekAPIKeyEnv, []string{"deepseek-chat", "deepseek-reasoner"}},
	"gemini":   {generator.DefaultGeminiModel, GeminiAPIKeyEnv, []string{generator.DefaultGeminiModel, "gemini-1.5-pro"}},
	"mock":     {DefaultModel, "", DefaultModels},
}

// Config is the full application configuration.
type Config struct {
	LLM            LLMConfig           `yaml:"llm" json:"llm"`
	ServerAddr     string              `yaml:"server_addr" json:"server_addr,omitempty"`
	DBDir          string              `yaml:"db_dir" json:"db_dir,omitempty"`
	DefaultGrade   string              `yaml:"default_grade" json:"default_grade,omitempty"`
	Profiles       []generator.Profile `yaml:"profiles" json:"profiles,omitempty"`
	RequestTimeout time.Duration       `yaml:"request_timeout" json:"request_timeout,omitempty"`
	BatchSize      int                 `yaml:"batch_size" json:"batch_size,omitempty"`
	Verbose        bool                `yaml:"verbose" json:"verbose,omitempty"`
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider    string   `yaml:"provider" json:"provider,omitempty"`
	Model       string   `yaml:"model" json:"model,omitempty"`
	Models      []string `yaml:"models" json:"models,omitempty"`
	APIKey      string   `yaml:"api_key" json:"api_key,omitempty"`
	APIKeyEnv   string   `yaml:"api_key_env" json:"api_key_env,omitempty"`
	BaseURL     string   `yaml:"base_url" json:"base_url,omitempty"`
	Temperature *float64 `yaml:"temperature" json:"temperature,omitempty"`
	MaxTokens   int      `yaml:"max_tokens" json:"max_tokens,omitempty"`
}

// NewConfig returns a Config populated with defaults. Model, models and the
// API key variable stay empty and resolve per provider.
func NewConfig() *Config {
	return &Config{
		LLM:            LLMConfig{Provider: DefaultProvider},
		ServerAddr:     DefaultServerAddr,
		DBDir:          XDGDataDir(),
		DefaultGrade:   generator.Grade2.String(),
		RequestTimeout: DefaultRequestTimeout,
		BatchSize:      DefaultBatchSize,
	}
}

// XDGDataDir is where the history database lives by default.
// On Linux: ~/.local/share/textdiff
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir is searched for config.yaml when no path is given.
// On Linux: ~/.config/textdiff
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// APIKey returns the configured key, falling back to the environment.
func (c *Config) APIKey() string {
	if c.LLM.APIKey != "" {
		return c.LLM.APIKey
	}
	env := c.APIKeyEnv()
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

// APIKeyEnv is the variable APIKey reads, llm.api_key_env or the provider's.
func (c *Config) APIKeyEnv() string {
	if c.LLM.APIKeyEnv != "" {
		return c.LLM.APIKeyEnv
	}
	return providers[c.LLM.Provider].keyEnv
}

// Model is llm.model or the provider's default model.
func (c *Config) Model() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	return providers[c.LLM.Provider].model
}

// Models is llm.models or the provider's model list. The result is a copy.
func (c *Config) Models() []string {
	if len(c.LLM.Models) > 0 {
		return slices.Clone(c.LLM.Models)
	}
	return slices.Clone(providers[c.LLM.Provider].models)
}

// Grade parses DefaultGrade.
func (c *Config) Grade() (generator.Grade, error) {
	return generator.ParseGrade(c.DefaultGrade)
}

// BaseOptions are the options used when a request names no profile.
func (c *Config) BaseOptions() generator.Options {
	opts := generator.DefaultOptions()
	if g, err := c.Grade(); err == nil {
		opts.Grade = g
	}
	return opts
}

// AllowsModel reports whether model may be requested. An empty model always
// means the provider default.
func (c *Config) AllowsModel(model string) bool {
	if model == "" || model == c.Model() {
		return true
	}
	return slices.Contains(c.Models(), model)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "gemini", "mock":
	case "deepseek":
		if c.LLM.BaseURL == "" {
			return ErrBaseURLRequired
		}
	default:
		return ErrUnknownProvider
	}
	if t := c.LLM.Temperature; t != nil && (*t < 0 || *t > 2) {
		return ErrInvalidTemperature
	}
	if c.LLM.MaxTokens < 0 {
		return ErrInvalidMaxTokens
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if _, err := c.Grade(); err != nil {
		return err
	}
	return nil
}
