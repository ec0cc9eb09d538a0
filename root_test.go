package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"text_differentiator/config"
	"text_differentiator/generator"
)

// writeConfig writes a mock-provider config with its own history directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("llm:\n  provider: mock\ndb_dir: %q\nbatch_size: 2\n", filepath.Join(dir, "data"))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "textdiff" {
			t.Errorf("expected use 'textdiff', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions and version", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has persistent flags", func(t *testing.T) {
		t.Parallel()
		verbose := cmd.PersistentFlags().Lookup("verbose")
		if verbose == nil || verbose.Shorthand != "v" || verbose.DefValue != "false" {
			t.Errorf("unexpected verbose flag: %+v", verbose)
		}
		cfg := cmd.PersistentFlags().Lookup("config")
		if cfg == nil || cfg.Shorthand != "c" || cfg.DefValue != "" {
			t.Errorf("unexpected config flag: %+v", cfg)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"serve": false, "adapt [file...]": false, "score [file|-]": false,
			"history": false, "profiles": false, "version": false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Use]; ok {
				want[sub.Use] = true
			}
		}
		for use, found := range want {
			if !found {
				t.Errorf("expected %q subcommand", use)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage || !cmd.SilenceErrors {
			t.Error("expected SilenceUsage and SilenceErrors to be true")
		}
	})
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := execute(t, "", "profiles", "--config", missing); err == nil {
		t.Error("expected error for a missing --config file")
	}
}

func TestBuildLLM(t *testing.T) {
	t.Parallel()

	newCfg := func(provider string) *config.Config {
		cfg := config.NewConfig()
		cfg.LLM.Provider = provider
		cfg.LLM.APIKeyEnv = "TEXTDIFF_TEST_UNSET_API_KEY"
		return cfg
	}

	t.Run("mock", func(t *testing.T) {
		t.Parallel()
		llm, closeLLM, err := buildLLM(context.Background(), newCfg("mock"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := llm.(generator.MockLLM); !ok {
			t.Errorf("expected MockLLM, got %T", llm)
		}
		if err := closeLLM(); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	t.Run("openai with key", func(t *testing.T) {
		t.Parallel()
		cfg := newCfg("openai")
		cfg.LLM.APIKey = "sk-test"
		cfg.LLM.MaxTokens = 500
		llm, _, err := buildLLM(context.Background(), cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		o, ok := llm.(*generator.OpenAILLM)
		if !ok {
			t.Fatalf("expected *OpenAILLM, got %T", llm)
		}
		if o.Model != config.DefaultModel || o.MaxTokens != 500 {
			t.Errorf("unexpected client: %+v", o)
		}
	})

	t.Run("openai without key", func(t *testing.T) {
		t.Parallel()
		if _, _, err := buildLLM(context.Background(), newCfg("openai")); err == nil {
			t.Error("expected error without an API key")
		}
	})

	t.Run("deepseek without base url", func(t *testing.T) {
		t.Parallel()
		cfg := newCfg("deepseek")
		cfg.LLM.APIKey = "sk-test"
		if _, _, err := buildLLM(context.Background(), cfg); !errors.Is(err, config.ErrBaseURLRequired) {
			t.Errorf("expected ErrBaseURLRequired, got %v", err)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		if _, _, err := buildLLM(context.Background(), newCfg("llama")); !errors.Is(err, config.ErrUnknownProvider) {
			t.Errorf("expected ErrUnknownProvider, got %v", err)
		}
	})
}

func TestServerModels(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LLM.Model = "gpt-4o"
	got := serverModels(cfg)
	want := []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("serverModels() = %v, want %v", got, want)
	}
	if cfg.Models()[0] != "gpt-4o-mini" {
		t.Error("serverModels must not modify the config")
	}
}

func TestServerModels_Gemini(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.LLM.Provider = "gemini"
	got := serverModels(cfg)
	if len(got) == 0 || got[0] != generator.DefaultGeminiModel {
		t.Errorf("serverModels() = %v, want %s first", got, generator.DefaultGeminiModel)
	}
	if slices.Contains(got, config.DefaultModel) {
		t.Errorf("serverModels() = %v offers an OpenAI model to gemini", got)
	}
}
