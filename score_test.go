package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScoreCmd(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "lesson.txt")
	if err := os.WriteFile(file, []byte("Beautiful day."), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name:  "stdin",
			stdin: "The cat sat.",
			args:  []string{"score", "-"},
			want:  []string{"Words:               3", "Avg sentence length: 1.5", "Reading ease:        120.7"},
		},
		{
			name: "file",
			args: []string{"score", file},
			want: []string{"Words:               2", "Reading ease:        36.6"},
		},
		{
			name:  "empty text",
			stdin: "   \n",
			args:  []string{"score", "-"},
			want:  []string{"not enough text to analyze"},
		},
		{
			name:  "json",
			stdin: "Wow!",
			args:  []string{"score", "--json", "-"},
			want:  []string{`"word_count": 1`, `"reading_ease": 121.7`},
		},
		{
			name:  "json without report",
			stdin: "",
			args:  []string{"score", "-j", "-"},
			want:  []string{`"report": null`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestScoreCmd_Errors(t *testing.T) {
	t.Parallel()

	if _, err := execute(t, "", "score"); err == nil {
		t.Error("expected error without an argument")
	}
	if _, err := execute(t, "", "score", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for a missing file")
	}
}
