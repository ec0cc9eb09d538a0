package generator

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Profile is a named preset of options for one student.
type Profile struct {
	Name    string  `json:"name" yaml:"name"`
	Options Options `json:"options" yaml:"options"`
}

// Setting is one labelled accommodation flag of a profile.
type Setting struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Settings lists the profile's accommodation flags in display order.
func (p Profile) Settings() []Setting {
	o := p.Options
	return []Setting{
		{label("simplify_vocab"), o.SimplifyVocab},
		{label("short_paragraphs"), o.ShortParagraphs},
		{label("in_text_definitions"), o.InTextDefinitions},
		{label("visual_breaks"), o.VisualBreaks},
		{label("generate_questions"), o.GenerateQuestions},
	}
}

// label turns "simplify_vocab" into "Simplify vocab".
func label(key string) string {
	words := strings.Split(key, "_")
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}

// BuiltinProfiles returns the shipped student presets.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Name: "Jordan – ELL 6th Grade",
			Options: Options{
				Grade:             Grade6,
				SimplifyVocab:     true,
				ShortParagraphs:   true,
				InTextDefinitions: true,
				VisualBreaks:      true,
				GenerateQuestions: true,
			},
		},
		{
			Name: "Ava – IEP 4th Grade",
			Options: Options{
				Grade:             Grade4,
				SimplifyVocab:     true,
				ShortParagraphs:   true,
				GenerateQuestions: true,
			},
		},
		{
			Name: "Liam – Advanced 8th Grade",
			Options: Options{
				Grade:             Grade8,
				GenerateQuestions: true,
			},
		},
	}
}

// Profiles is a name-indexed profile set.
type Profiles struct {
	byName map[string]Profile
}

// NewProfiles indexes the built-in profiles plus extra; an extra profile
// with a built-in name replaces it.
func NewProfiles(extra ...Profile) *Profiles {
	p := &Profiles{byName: make(map[string]Profile)}
	for _, pr := range BuiltinProfiles() {
		p.byName[pr.Name] = pr
	}
	for _, pr := range extra {
		if pr.Name == "" {
			continue
		}
		p.byName[pr.Name] = pr
	}
	return p
}

// Get looks up a profile by exact name.
func (p *Profiles) Get(name string) (Profile, bool) {
	pr, ok := p.byName[name]
	return pr, ok
}

// Names returns profile names sorted alphabetically.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.byName))
	for n := range p.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns the profiles in Names order.
func (p *Profiles) All() []Profile {
	out := make([]Profile, 0, len(p.byName))
	for _, n := range p.Names() {
		out = append(out, p.byName[n])
	}
	return out
}

// Resolve returns the options for profile name, or base when name is empty or "None".
func (p *Profiles) Resolve(name string, base Options) (Options, bool) {
	if name == "" || name == "None" {
		return base, true
	}
	pr, ok := p.Get(name)
	if !ok {
		return base, false
	}
	return pr.Options, true
}
