package generator

import (
	"strings"
	"testing"
)

func TestBuildAdaptPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes grade guidelines and user text", func(t *testing.T) {
		t.Parallel()

		p := BuildAdaptPrompt("Cells divide.", Options{Grade: Grade3})
		if !strings.Contains(p.System, "TARGET: 3rd Grade students.") {
			t.Error("system prompt missing target grade")
		}
		if !strings.Contains(p.System, "Sentence length: 10–15 words") {
			t.Error("system prompt missing grade guideline")
		}
		if p.User != "Adapt this text for 3rd Grade:\n\nCells divide." {
			t.Errorf("unexpected user prompt %q", p.User)
		}
		if p.MaxTokens != DefaultMaxTokens {
			t.Errorf("MaxTokens = %d, want %d", p.MaxTokens, DefaultMaxTokens)
		}
	})

	t.Run("lists only enabled accommodations", func(t *testing.T) {
		t.Parallel()

		p := BuildAdaptPrompt("x", Options{Grade: Grade8, SimplifyVocab: true, VisualBreaks: true})
		if !strings.Contains(p.System, "Simplify vocabulary") {
			t.Error("expected simplify accommodation")
		}
		if !strings.Contains(p.System, "Visual breaks between ideas") {
			t.Error("expected visual breaks accommodation")
		}
		if strings.Contains(p.System, "definitions in parentheses") {
			t.Error("definitions should be absent")
		}
		if strings.Contains(p.System, "Short paragraphs") {
			t.Error("short paragraphs should be absent")
		}
		if !strings.Contains(p.System, "Active voice; literal language") {
			t.Error("fixed accommodations must always be present")
		}
	})
}

func TestBuildQuestionsPrompt(t *testing.T) {
	t.Parallel()

	p := BuildQuestionsPrompt("Plants grow.", Grade1)
	if p.System != questionsSystemPrompt {
		t.Errorf("System = %q", p.System)
	}
	want := "Create 6 questions for 1st Grade students based on this text:\n\nPlants grow."
	if p.User != want {
		t.Errorf("User = %q, want %q", p.User, want)
	}
}
