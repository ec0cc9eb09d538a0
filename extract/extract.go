// Package extract loads the text a teacher wants to adapt from a file,
// standard input or an uploaded document.
package extract

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/format"
	"golang.org/x/text/unicode/norm"
)

// MaxTextSize bounds plain-text input.
const MaxTextSize = 4 << 20

// ErrNotText is returned for plain files that are not valid UTF-8.
var ErrNotText = errors.New("input is not UTF-8 text")

// Loader reads documents. The zero value reads from os.Stdin for "-".
type Loader struct {
	Stdin  io.Reader
	Logger *slog.Logger
}

// Load returns the NFC-normalized text of path. PDF, DOCX and ODT files are
// extracted with tabula; anything else is read as UTF-8 text.
func (l Loader) Load(path string) (string, error) {
	if path == "-" {
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		return ReadText(in)
	}

	switch format.Detect(path) {
	case format.PDF, format.DOCX, format.ODT:
		text, warnings, err := tabula.Open(path).JoinParagraphs().Text()
		if err != nil {
			return "", fmt.Errorf("extract %s: %w", path, err)
		}
		if len(warnings) > 0 && l.Logger != nil {
			l.Logger.Warn("document extraction warnings", "path", path, "count", len(warnings))
		}
		return Normalize(text), nil
	}

	f, err := os.Open(path) //nolint:gosec // user-provided input path is intentional
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ReadText(f)
}

// Load is Loader{}.Load.
func Load(path string) (string, error) {
	return Loader{}.Load(path)
}

// ReadText reads at most MaxTextSize bytes of UTF-8 text from r.
func ReadText(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxTextSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxTextSize {
		return "", fmt.Errorf("input exceeds %d bytes", MaxTextSize)
	}
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return Normalize(string(data)), nil
}

// Normalize composes the text to NFC, drops a BOM and unifies line endings,
// so that words split the same way whatever produced the file.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return norm.NFC.String(s)
}
