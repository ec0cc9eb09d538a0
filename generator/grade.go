package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGrade is returned by ParseGrade for names outside the grade list.
var ErrUnknownGrade = errors.New("unknown grade level")

// Grade is a target reading grade, Kindergarten through 12th Grade.
type Grade int

const (
	Kindergarten Grade = iota
	Grade1
	Grade2
	Grade3
	Grade4
	Grade5
	Grade6
	Grade7
	Grade8
	Grade9
	Grade10
	Grade11
	Grade12
)

var gradeNames = [...]string{
	"Kindergarten", "1st Grade", "2nd Grade", "3rd Grade", "4th Grade",
	"5th Grade", "6th Grade", "7th Grade", "8th Grade",
	"9th Grade", "10th Grade", "11th Grade", "12th Grade",
}

func (g Grade) String() string {
	if g < Kindergarten || g > Grade12 {
		return fmt.Sprintf("Grade(%d)", int(g))
	}
	return gradeNames[g]
}

// Valid reports whether g is one of the defined grades.
func (g Grade) Valid() bool {
	return g >= Kindergarten && g <= Grade12
}

// MarshalText encodes the grade by its display name.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGrade, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText accepts any form ParseGrade accepts.
func (g *Grade) UnmarshalText(b []byte) error {
	parsed, err := ParseGrade(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGrade resolves "4th Grade", "4th", "4", "K" or "kindergarten".
func ParseGrade(s string) (Grade, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "k", "kindergarten", "0":
		return Kindergarten, nil
	}
	name = strings.TrimSuffix(name, " grade")
	for g := Grade1; g <= Grade12; g++ {
		full := strings.ToLower(gradeNames[g])
		ordinal := strings.TrimSuffix(full, " grade")
		number := strings.TrimRight(ordinal, "stndrh")
		if name == ordinal || name == number {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGrade, s)
}

// Grades returns every grade in ascending order.
func Grades() []Grade {
	out := make([]Grade, 0, len(gradeNames))
	for g := Kindergarten; g <= Grade12; g++ {
		out = append(out, g)
	}
	return out
}

// Guidelines describe the writing targets for a grade.
type Guidelines struct {
	SentenceLength string `json:"sentence_length"`
	Vocabulary     string `json:"vocabulary"`
	Complexity     string `json:"complexity"`
	Concepts       string `json:"concepts"`
}

var guides = map[Grade]Guidelines{
	Kindergarten: {"3–5 words", "Basic sight words", "Simple S‑V", "Concrete objects"},
	Grade1:       {"5–8 words", "Sight + simple descript.", "Basic conj.", "Familiar experiences"},
	Grade2:       {"8–12 words", "Growing sight list", "and/but compounds", "Comparisons, sequence"},
	Grade3:       {"10–15 words", "Academic vocab", "Dep. clauses", "Abstract ideas + examples"},
	Grade4:       {"12–18 words", "Subject terms", "Varied structs", "Cause–effect, inference"},
	Grade5:       {"15–20 words", "Figurative language", "Sophisticated variety", "Abstract, critical"},
}

// upper grades share one guide
var defaultGuide = Guidelines{"Varies", "Grade academic vocab", "Full range", "Abstract / complex"}

// Guide returns the writing guidelines for g.
func Guide(g Grade) Guidelines {
	if gl, ok := guides[g]; ok {
		return gl
	}
	return defaultGuide
}
