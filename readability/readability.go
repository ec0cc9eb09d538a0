// Package readability computes Flesch Reading Ease statistics for a text sample.
package readability

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const vowels = "aeiouy"

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Report holds the readability statistics of one text sample.
type Report struct {
	WordCount         int     `json:"word_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	ReadingEase       float64 `json:"reading_ease"`
}

// Score computes the readability report for text. ok is false when the text
// has no words, which callers treat as "nothing to analyze".
//
// Sentence segments are the pieces between runs of terminal punctuation, so a
// text ending in "." counts one extra, empty segment. Stored scores depend on
// that count; keep it.
func Score(text string) (r Report, ok bool) {
	sentences := sentenceBreak.Split(text, -1)
	words := strings.FieldsFunc(text, isSpace)
	if len(sentences) == 0 || len(words) == 0 {
		return Report{}, false
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	asl := float64(len(words)) / float64(len(sentences))
	asw := float64(syllables) / float64(len(words))
	// explicit conversions keep the compiler from fusing multiply-adds,
	// which would shift the last bit on some architectures
	ease := 206.835 - float64(1.015*asl) - float64(84.6*asw)

	return Report{
		WordCount:         len(words),
		AvgSentenceLength: round1(asl),
		ReadingEase:       round1(ease),
	}, true
}

// isSpace also splits on the ASCII file, group, record and unit separators,
// which unicode.IsSpace leaves inside words.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// CountSyllables estimates the syllables in word: one per vowel group, minus a
// trailing silent "e", never less than one.
func CountSyllables(word string) int {
	runes := []rune(strings.ToLower(word))
	count := 0
	if len(runes) > 0 && isVowel(runes[0]) {
		count++
	}
	for i := 1; i < len(runes); i++ {
		if isVowel(runes[i]) && !isVowel(runes[i-1]) {
			count++
		}
	}
	if len(runes) > 0 && runes[len(runes)-1] == 'e' {
		count--
	}
	return max(count, 1)
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// round1 rounds to one decimal, ties to even on the exact binary value.
func round1(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 1, 64), 64)
	return v
}
