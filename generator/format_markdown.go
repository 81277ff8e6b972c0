package generator

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// MarkdownFormatter renders model output as Markdown. Raw HTML in the input is not passed through.
type MarkdownFormatter struct {
	md goldmark.Markdown
}

func NewMarkdownFormatter() MarkdownFormatter {
	return MarkdownFormatter{md: goldmark.New()}
}

func (f MarkdownFormatter) Format(raw string) string {
	md := f.md
	if md == nil {
		md = goldmark.New()
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(raw), &buf); err != nil {
		return FormatParagraphs(raw)
	}
	return buf.String()
}
