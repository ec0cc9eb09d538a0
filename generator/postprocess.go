package generator

import (
	"errors"
	"strings"
)

// ErrEmptyCompletion is returned when the model produced no usable text.
var ErrEmptyCompletion = errors.New("model returned empty text")

// PostProcess trims the completion and unwraps a whole-response code fence.
func PostProcess(raw string) (string, error) {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// stripFence removes a ```markdown ... ``` wrapper some models add despite instructions.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	// drop an info string such as "markdown" on the opening line
	if first, rest, ok := strings.Cut(body, "\n"); ok && !strings.ContainsAny(first, " \t") {
		body = rest
	}
	return strings.TrimSpace(body)
}

// Preview shortens s to limit runes, marking the cut with "...".
func Preview(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
