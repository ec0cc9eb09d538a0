package readability

import (
	"strings"
	"sync"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   Report
		wantOK bool
	}{
		{
			name:   "short sentence with trailing period",
			text:   "The cat sat.",
			want:   Report{WordCount: 3, AvgSentenceLength: 1.5, ReadingEase: 120.7},
			wantOK: true,
		},
		{
			name:   "exclamation",
			text:   "Wow!",
			want:   Report{WordCount: 1, AvgSentenceLength: 0.5, ReadingEase: 121.7},
			wantOK: true,
		},
		{
			name:   "no punctuation is one sentence",
			text:   "rhythm",
			want:   Report{WordCount: 1, AvgSentenceLength: 1.0, ReadingEase: 121.2},
			wantOK: true,
		},
		{
			name:   "multi syllable words",
			text:   "Beautiful day.",
			want:   Report{WordCount: 2, AvgSentenceLength: 1.0, ReadingEase: 36.6},
			wantOK: true,
		},
		{
			name:   "sentence length tie rounds to even",
			text:   "a.b.c.",
			want:   Report{WordCount: 1, AvgSentenceLength: 0.2, ReadingEase: 122.0},
			wantOK: true,
		},
		{
			name:   "sentence length tie rounds up to even",
			text:   "Hi. . .",
			want:   Report{WordCount: 3, AvgSentenceLength: 0.8, ReadingEase: 121.5},
			wantOK: true,
		},
		{
			name:   "punctuation runs collapse",
			text:   "Really?! Yes...",
			want:   Report{WordCount: 2, AvgSentenceLength: 0.7, ReadingEase: 79.3},
			wantOK: true,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			text:   "  \n\t  ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Score(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Score(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Score(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScore_WordCountMatchesFields(t *testing.T) {
	t.Parallel()

	texts := []string{
		"One two  three\nfour",
		"\tleading and trailing\t ",
		"Plants need light. They also need water! Do they need soil?",
		"日本語 のテキスト です。",
	}
	for _, text := range texts {
		got, ok := Score(text)
		if !ok {
			t.Fatalf("Score(%q) returned no report", text)
		}
		if want := len(strings.Fields(text)); got.WordCount != want {
			t.Errorf("Score(%q).WordCount = %d, want %d", text, got.WordCount, want)
		}
	}
}

func TestScore_SeparatorControlsSplitWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"a\x1cb\x1dc\x1ed\x1fe.", 5},
		{"one\u00a0two\u2003three", 3},
		{"no\x1bsplit", 1},
	}
	for _, tt := range tests {
		got, ok := Score(tt.text)
		if !ok {
			t.Fatalf("Score(%q) returned no report", tt.text)
		}
		if got.WordCount != tt.want {
			t.Errorf("Score(%q).WordCount = %d, want %d", tt.text, got.WordCount, tt.want)
		}
	}
}

func TestScore_NoPunctuationUsesWordCount(t *testing.T) {
	t.Parallel()

	got, ok := Score("the quick brown fox jumps")
	if !ok {
		t.Fatal("expected a report")
	}
	if got.AvgSentenceLength != 5.0 {
		t.Errorf("AvgSentenceLength = %v, want 5.0", got.AvgSentenceLength)
	}
}

func TestScore_Idempotent(t *testing.T) {
	t.Parallel()

	text := "Photosynthesis converts sunlight into chemical energy. Plants store it as sugar."
	first, _ := Score(text)
	second, _ := Score(text)
	if first != second {
		t.Errorf("Score not deterministic: %+v vs %+v", first, second)
	}
}

func TestScore_LongerWordsLowerEase(t *testing.T) {
	t.Parallel()

	short, _ := Score("Cat dog sun.")
	long, _ := Score("Beautiful elephants celebrated.")
	if short.AvgSentenceLength != long.AvgSentenceLength {
		t.Fatalf("sentence lengths differ: %v vs %v", short.AvgSentenceLength, long.AvgSentenceLength)
	}
	if long.ReadingEase >= short.ReadingEase {
		t.Errorf("ReadingEase for longer words = %v, want less than %v", long.ReadingEase, short.ReadingEase)
	}
}

func TestScore_ConcurrentUse(t *testing.T) {
	t.Parallel()

	want, _ := Score("The cat sat.")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := Score("The cat sat."); got != want {
				t.Errorf("concurrent Score = %+v, want %+v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestCountSyllables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want int
	}{
		{"a", 1},
		{"e", 1},
		{"rhythm", 1},
		{"the", 1},
		{"cat", 1},
		{"sat.", 1},
		{"wow!", 1},
		{"queue", 1},
		{"beautiful", 3},
		{"Apple", 1},
		{"table", 1},
		{"yellow", 2},
		{"create", 1},
		{"happy", 2},
		{"AEIOU", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := CountSyllables(tt.word); got != tt.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
