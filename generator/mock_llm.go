package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is an offline stand-in for local runs; it never calls a model.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if strings.HasPrefix(prompt.System, questionsSystemPrompt) {
		var sb strings.Builder
		for i := 1; i <= questionCount; i++ {
			sb.WriteString(fmt.Sprintf("%d. What is one important idea in this text?\n", i))
		}
		return sb.String(), nil
	}

	// echo the text back under a heading, one sentence per line
	_, text, _ := strings.Cut(prompt.User, "\n\n")
	var sb strings.Builder
	sb.WriteString("## Adapted text\n\n")
	for _, s := range strings.SplitAfter(strings.TrimSpace(text), ". ") {
		if s = strings.TrimSpace(s); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n\n")
		}
	}
	return sb.String(), nil
}
