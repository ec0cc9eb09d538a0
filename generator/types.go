package generator

import "time"

// Options selects the target grade and the accommodations applied to a text.
type Options struct {
	Grade             Grade `json:"grade" yaml:"grade"`
	SimplifyVocab     bool  `json:"simplify_vocab" yaml:"simplify_vocab"`
	ShortParagraphs   bool  `json:"short_paragraphs" yaml:"short_paragraphs"`
	InTextDefinitions bool  `json:"in_text_definitions" yaml:"in_text_definitions"`
	VisualBreaks      bool  `json:"visual_breaks" yaml:"visual_breaks"`
	GenerateQuestions bool  `json:"generate_questions" yaml:"generate_questions"`
}

// DefaultOptions are the settings used when no profile is chosen.
func DefaultOptions() Options {
	return Options{
		Grade:             Grade2,
		SimplifyVocab:     true,
		ShortParagraphs:   true,
		InTextDefinitions: true,
		VisualBreaks:      false,
		GenerateQuestions: true,
	}
}

// Adaptation is one completed adapt cycle.
type Adaptation struct {
	Grade     Grade     `json:"grade"`
	Model     string    `json:"model"`
	Original  string    `json:"original"`
	Adapted   string    `json:"adapted"`
	Questions string    `json:"questions,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
