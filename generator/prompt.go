package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the LLM.
type Prompt struct {
	System string
	User   string
	// Model overrides the client's configured model when set.
	Model string
	// MaxTokens caps the completion length; zero leaves the provider default.
	MaxTokens int
}

const (
	questionsSystemPrompt = "Write clear comprehension questions for the given grade."
	questionCount         = 6
)

// BuildAdaptPrompt builds the prompt that rewrites text for opts.Grade.
func BuildAdaptPrompt(text string, opts Options) Prompt {
	rules := Guide(opts.Grade)
	grade := opts.Grade.String()

	var sb strings.Builder
	sb.WriteString("You are an expert special‑education content specialist.\n\n")
	sb.WriteString(fmt.Sprintf("TARGET: %s students.\n\n", grade))

	sb.WriteString("GUIDELINES\n")
	sb.WriteString(fmt.Sprintf(" • Sentence length: %s\n", rules.SentenceLength))
	sb.WriteString(fmt.Sprintf(" • Vocabulary: %s\n", rules.Vocabulary))
	sb.WriteString(fmt.Sprintf(" • Complexity: %s\n", rules.Complexity))
	sb.WriteString(fmt.Sprintf(" • Concepts: %s\n\n", rules.Concepts))

	sb.WriteString("ACCOMMODATIONS\n")
	if opts.SimplifyVocab {
		sb.WriteString(" • Simplify vocabulary\n")
	}
	if opts.InTextDefinitions {
		sb.WriteString(" • Add definitions in parentheses\n")
	}
	if opts.ShortParagraphs {
		sb.WriteString(" • Short paragraphs (2‑3 sent.)\n")
	}
	if opts.VisualBreaks {
		sb.WriteString(" • Visual breaks between ideas\n")
	}
	sb.WriteString(" • Clear topic sentences, transitions\n")
	sb.WriteString(" • Active voice; literal language\n\n")

	sb.WriteString("PRESERVE\n")
	sb.WriteString(" • All key ideas, meaning, purpose\n\n")

	sb.WriteString("OUTPUT\n")
	sb.WriteString(" • Markdown only (no commentary)\n")
	sb.WriteString(" • **Bold** key terms\n")
	sb.WriteString(" • Bullet lists where useful\n")
	sb.WriteString(" • Short, focused paragraphs\n")

	return Prompt{
		System:    sb.String(),
		User:      fmt.Sprintf("Adapt this text for %s:\n\n%s", grade, text),
		MaxTokens: DefaultMaxTokens,
	}
}

// BuildQuestionsPrompt builds the comprehension-question prompt for an adapted text.
func BuildQuestionsPrompt(adapted string, grade Grade) Prompt {
	return Prompt{
		System: questionsSystemPrompt,
		User:   fmt.Sprintf("Create %d questions for %s students based on this text:\n\n%s", questionCount, grade, adapted),
	}
}
