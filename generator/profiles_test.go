package generator

import "testing"

func TestProfiles(t *testing.T) {
	t.Parallel()

	t.Run("built-ins are available", func(t *testing.T) {
		t.Parallel()

		p := NewProfiles()
		ava, ok := p.Get("Ava – IEP 4th Grade")
		if !ok {
			t.Fatal("missing built-in profile")
		}
		if ava.Options.Grade != Grade4 || ava.Options.InTextDefinitions || !ava.Options.GenerateQuestions {
			t.Errorf("unexpected Ava options: %+v", ava.Options)
		}
		if len(p.Names()) != 3 {
			t.Errorf("Names = %v", p.Names())
		}
	})

	t.Run("extra profiles override by name", func(t *testing.T) {
		t.Parallel()

		p := NewProfiles(
			Profile{Name: "Liam – Advanced 8th Grade", Options: Options{Grade: Grade10}},
			Profile{Name: "Noah", Options: Options{Grade: Grade1}},
			Profile{},
		)
		liam, _ := p.Get("Liam – Advanced 8th Grade")
		if liam.Options.Grade != Grade10 {
			t.Errorf("override not applied: %+v", liam)
		}
		if len(p.All()) != 4 {
			t.Errorf("All = %d profiles, want 4", len(p.All()))
		}
	})

	t.Run("resolve", func(t *testing.T) {
		t.Parallel()

		p := NewProfiles()
		base := DefaultOptions()
		if got, ok := p.Resolve("None", base); !ok || got != base {
			t.Error("None should return base options")
		}
		got, ok := p.Resolve("Jordan – ELL 6th Grade", base)
		if !ok || got.Grade != Grade6 || !got.VisualBreaks {
			t.Errorf("Resolve Jordan = %+v, %v", got, ok)
		}
		if _, ok := p.Resolve("Nobody", base); ok {
			t.Error("unknown profile should not resolve")
		}
	})
}

func TestProfile_Settings(t *testing.T) {
	t.Parallel()

	s := BuiltinProfiles()[0].Settings()
	if len(s) != 5 {
		t.Fatalf("len(Settings) = %d", len(s))
	}
	if s[0].Label != "Simplify vocab" || !s[0].Enabled {
		t.Errorf("first setting = %+v", s[0])
	}
	if s[2].Label != "In text definitions" {
		t.Errorf("label = %q", s[2].Label)
	}
}
