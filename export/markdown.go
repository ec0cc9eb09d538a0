package export

import (
	"bytes"
	"io"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"text_differentiator/generator"
)

const historyTitle = "Text Differentiator Pro — History"

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToHTML renders model markdown as HTML. Raw HTML in the input is
// dropped by goldmark's default (unsafe off) renderer.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HistoryMarkdown writes records as a markdown document, in the given order.
func HistoryMarkdown(w io.Writer, records []generator.Record) error {
	doc := markdown.NewMarkdown(w)
	doc.H1(historyTitle)
	doc.PlainText("")

	if len(records) == 0 {
		doc.Note("No history yet. Run an adaptation first.")
		return doc.Build()
	}

	for _, r := range records {
		doc.H2(r.Timestamp + "  |  " + r.Grade)
		doc.PlainText("")
		doc.Table(markdown.TableSet{
			Header: []string{"", "Preview"},
			Rows: [][]string{
				{"Original", cell(r.Original)},
				{"Adapted", cell(r.Adapted)},
			},
		})
		doc.PlainText("")
		doc.HorizontalRule()
		doc.PlainText("")
	}
	return doc.Build()
}

// cell flattens s for a single table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// HistoryHTML renders the markdown history document as HTML.
func HistoryHTML(w io.Writer, records []generator.Record) error {
	var buf bytes.Buffer
	if err := HistoryMarkdown(&buf, records); err != nil {
		return err
	}
	return md.Convert(buf.Bytes(), w)
}
