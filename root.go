package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"text_differentiator/config"
	"text_differentiator/generator"
	"text_differentiator/history"
	"text_differentiator/logging"
)

// NewRootCmd creates the root command for textdiff.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textdiff",
		Short: "Adapt instructional texts to a target reading grade level",
		Long: `textdiff rewrites instructional materials for a target grade level with a
chat-completion model, writes comprehension questions, and compares the
readability of the original and the adapted text.

Run "textdiff serve" for the web page, or use the adapt, score and history
commands directly.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: $XDG_CONFIG_HOME/textdiff/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAdaptCmd())
	cmd.AddCommand(NewScoreCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewProfilesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// loadConfig reads --config, or the XDG default when the flag is empty.
// Only an explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), getVerboseFlag(cmd) || cfg.Verbose)
}

// buildLLM returns the client for cfg.LLM.Provider and a function releasing it.
func buildLLM(ctx context.Context, cfg *config.Config) (generator.LLMClient, func() error, error) {
	settings := &generator.LLMSettings{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.Model(),
		APIKey:      cfg.APIKey(),
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}
	noop := func() error { return nil }

	switch cfg.LLM.Provider {
	case "openai":
		llm, err := generator.NewOpenAILLMFromConfig(settings)
		return llm, noop, err
	case "deepseek":
		// DeepSeek serves an OpenAI-compatible API at base_url.
		if cfg.LLM.BaseURL == "" {
			return nil, noop, config.ErrBaseURLRequired
		}
		llm, err := generator.NewOpenAILLMFromConfig(settings)
		return llm, noop, err
	case "gemini":
		llm, err := generator.NewGeminiLLMFromConfig(ctx, settings)
		if err != nil {
			return nil, noop, err
		}
		return llm, llm.Close, nil
	case "mock":
		return generator.MockLLM{}, noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", config.ErrUnknownProvider, cfg.LLM.Provider)
	}
}

// newAgent validates cfg and builds the agent and its profile set.
func newAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*generator.Agent, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}
	llm, closeLLM, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	agent, err := generator.NewAgent(llm, generator.WithLogger(logger))
	if err != nil {
		_ = closeLLM()
		return nil, nil, err
	}
	return agent, closeLLM, nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	store, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}
