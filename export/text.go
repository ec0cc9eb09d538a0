package export

import (
	"fmt"
	"strings"
	"time"

	"text_differentiator/generator"
)

const stampLayout = "20060102_1504"

// Kind names a downloadable artifact.
type Kind string

const (
	KindAdapted   Kind = "adapted"
	KindQuestions Kind = "questions"
	KindPackage   Kind = "package"
)

// Filename returns the download name for kind, e.g. "adapted_4th Grade_20250102_0800.txt".
func Filename(kind Kind, grade generator.Grade, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", kind, grade, now.Format(stampLayout))
}

// HistoryFilename returns the history download name with the given extension.
func HistoryFilename(ext string, now time.Time) string {
	return fmt.Sprintf("history_%s.%s", now.Format(stampLayout), strings.TrimPrefix(ext, "."))
}

// Package renders the complete text package for a.
func Package(a generator.Adaptation, now time.Time) string {
	var questions string
	if a.Questions != "" {
		questions = "QUESTIONS\n---------\n" + a.Questions
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "GENERATED %s\n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "GRADE %s\n", a.Grade)
	fmt.Fprintf(&sb, "MODEL %s\n\n", a.Model)
	fmt.Fprintf(&sb, "ORIGINAL\n--------\n%s\n\n", a.Original)
	fmt.Fprintf(&sb, "ADAPTED\n-------\n%s\n\n", a.Adapted)
	sb.WriteString(questions)
	sb.WriteString("\n")
	return sb.String()
}

// Artifact returns the body of kind for a. ok is false when there is nothing
// to download (no questions were generated).
func Artifact(kind Kind, a generator.Adaptation, now time.Time) (body string, ok bool) {
	switch kind {
	case KindAdapted:
		return a.Adapted, true
	case KindQuestions:
		return a.Questions, a.Questions != ""
	case KindPackage:
		return Package(a, now), true
	}
	return "", false
}
