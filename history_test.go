package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"text_differentiator/generator"
)

func sampleAdaptation() generator.Adaptation {
	return generator.Adaptation{
		Grade:     generator.Grade4,
		Model:     "gpt-4o-mini",
		Original:  lesson,
		Adapted:   "Plants use light to make food.",
		CreatedAt: time.Date(2025, 2, 3, 14, 7, 0, 0, time.UTC),
	}
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)

	out, err := execute(t, "", "history", "-c", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No history yet") {
		t.Errorf("expected empty history, got %q", out)
	}

	if _, err := execute(t, lesson, "adapt", "-c", cfg, "--grade", "K", "--out", "-", "-"); err != nil {
		t.Fatalf("adapt: %v", err)
	}

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "", "history", "-c", cfg, "--limit", "5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Showing 1 of 1 saved adaptations", "#1", "Kindergarten", "gpt-4o-mini", "words 12→15", "original: Photosynthesis"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("show", func(t *testing.T) {
		out, err := execute(t, "", "history", "-c", cfg, "--show", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "GRADE Kindergarten") || !strings.Contains(out, "ORIGINAL\n--------\n"+lesson) {
			t.Errorf("unexpected package:\n%s", out)
		}
		if _, err := execute(t, "", "history", "-c", cfg, "--show", "99"); err == nil {
			t.Error("expected error for an unknown entry")
		}
	})

	t.Run("markdown to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.md")
		if _, err := execute(t, "", "history", "-c", cfg, "--markdown", "--output", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !strings.HasPrefix(string(data), "# Text Differentiator Pro") || !strings.Contains(string(data), "Kindergarten") {
			t.Errorf("unexpected markdown:\n%s", data)
		}
	})

	t.Run("html", func(t *testing.T) {
		out, err := execute(t, "", "history", "-c", cfg, "--html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "<h1>") || !strings.Contains(out, "<table>") {
			t.Errorf("unexpected html:\n%s", out)
		}
	})

	t.Run("exclusive formats", func(t *testing.T) {
		if _, err := execute(t, "", "history", "-c", cfg, "--markdown", "--html"); err == nil {
			t.Error("expected error for --markdown with --html")
		}
	})

	t.Run("negative limit", func(t *testing.T) {
		if _, err := execute(t, "", "history", "-c", cfg, "--limit", "-1"); err == nil {
			t.Error("expected error for a negative limit")
		}
	})

	t.Run("clear", func(t *testing.T) {
		out, err := execute(t, "", "history", "-c", cfg, "--clear")
		if err != nil || !strings.Contains(out, "History cleared.") {
			t.Fatalf("clear: %q, %v", out, err)
		}
		out, err = execute(t, "", "history", "-c", cfg)
		if err != nil || !strings.Contains(out, "No history yet") {
			t.Errorf("after clear: %q, %v", out, err)
		}
	})
}

func TestProfilesCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := `llm:
  provider: mock
profiles:
  - name: "Maya – 3rd Grade"
    options:
      grade: "3rd Grade"
      visual_breaks: true
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "", "profiles", "-c", cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"Jordan – ELL 6th Grade\n  Grade Level: 6th Grade\n  Simplify vocab: yes",
		"Liam – Advanced 8th Grade\n  Grade Level: 8th Grade\n  Simplify vocab: no",
		"Maya – 3rd Grade\n  Grade Level: 3rd Grade",
		"Visual breaks: yes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
