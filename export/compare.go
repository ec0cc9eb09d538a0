// Package export renders adaptation results for display and download: the
// before/after comparison, text downloads and the history document.
package export

import (
	"math"

	"text_differentiator/readability"
)

// Comparison is the before/after view of one adaptation.
type Comparison struct {
	Original readability.Report `json:"original"`
	Adapted  readability.Report `json:"adapted"`
	// Reduction is the percent drop in word count; valid only when HasReduction.
	Reduction    int  `json:"reduction"`
	HasReduction bool `json:"has_reduction"`
}

// Compare scores both texts. ok is false when either text has no report.
func Compare(original, adapted string) (c Comparison, ok bool) {
	o, ok := readability.Score(original)
	if !ok {
		return Comparison{}, false
	}
	a, ok := readability.Score(adapted)
	if !ok {
		return Comparison{}, false
	}
	return NewComparison(o, a), true
}

// NewComparison derives the word-count reduction. It is left unset when the
// original has no words.
func NewComparison(original, adapted readability.Report) Comparison {
	c := Comparison{Original: original, Adapted: adapted}
	if original.WordCount == 0 {
		return c
	}
	ratio := float64(adapted.WordCount) / float64(original.WordCount)
	c.Reduction = int(math.RoundToEven((1 - ratio) * 100))
	c.HasReduction = true
	return c
}
