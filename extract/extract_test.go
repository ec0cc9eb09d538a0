package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_PlainText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lesson.txt")
	if err := os.WriteFile(path, []byte("\ufeffThe water cycle.\r\nRain falls."), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := "The water cycle.\nRain falls."; got != want {
		t.Errorf("Load = %q, want %q", got, want)
	}
}

func TestLoad_Stdin(t *testing.T) {
	t.Parallel()

	got, err := Loader{Stdin: strings.NewReader("from stdin")}.Load("-")
	if err != nil || got != "from stdin" {
		t.Errorf("Load(-) = %q, %v", got, err)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want not exist", err)
	}
}

func TestReadText(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid utf8", func(t *testing.T) {
		t.Parallel()

		if _, err := ReadText(strings.NewReader("\xff\xfe")); !errors.Is(err, ErrNotText) {
			t.Errorf("error = %v, want ErrNotText", err)
		}
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		t.Parallel()

		big := strings.NewReader(strings.Repeat("a", MaxTextSize+1))
		if _, err := ReadText(big); err == nil {
			t.Error("expected size error")
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent composes to a single rune
	decomposed := "cafe\u0301"
	if got := Normalize(decomposed); got != "caf\u00e9" {
		t.Errorf("Normalize(%q) = %q", decomposed, got)
	}
}
