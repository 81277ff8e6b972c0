package generator

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/util"
)

// DefaultHeadingPattern matches section-marker words, roman/arabic enumerators and
// capitalized phrases, each followed by a colon.
const DefaultHeadingPattern = `^(Section|Subtopic|Key|Overview|I+\.|\d+\.|[A-Z][a-zA-Z\s]+):`

var noiseChars = regexp.MustCompile("[*\\\\\"`]+")

// Clean strips markup noise (asterisks, backslashes, quotes, backticks) and surrounding whitespace.
func Clean(s string) string {
	return strings.TrimSpace(noiseChars.ReplaceAllString(s, ""))
}

// Formatter turns generated prose into an HTML fragment.
type Formatter interface {
	Format(raw string) string
}

// HeadingRule decides whether a cleaned line is rendered as a heading.
type HeadingRule interface {
	IsHeading(line string) bool
}

// PatternRule is a HeadingRule backed by a regular expression.
type PatternRule struct {
	re *regexp.Regexp
}

func NewPatternRule(pattern string) (PatternRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return PatternRule{}, err
	}
	return PatternRule{re: re}, nil
}

func (r PatternRule) IsHeading(line string) bool {
	return r.re.MatchString(line)
}

var defaultHeadingRule = PatternRule{re: regexp.MustCompile(DefaultHeadingPattern)}

// ParagraphFormatter classifies each line as heading, list item or paragraph.
type ParagraphFormatter struct {
	Headings HeadingRule
}

// FormatParagraphs formats raw with the default heading rule.
func FormatParagraphs(raw string) string {
	return ParagraphFormatter{}.Format(raw)
}

func (f ParagraphFormatter) Format(raw string) string {
	rule := f.Headings
	if rule == nil {
		rule = defaultHeadingRule
	}

	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	var b strings.Builder
	inList := false
	for i, rawLine := range lines {
		line := Clean(rawLine)
		isItem := !rule.IsHeading(line) && strings.HasPrefix(line, "-")
		if inList && !isItem {
			b.WriteString("</ul>\n")
			inList = false
		}
		switch {
		case isItem:
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>" + escape(strings.TrimSpace(line[1:])) + "</li>\n")
			// Continuation looks at the next raw line, so an indented "- x" closes the list
			// and opens a new one.
			if i == len(lines)-1 || !strings.HasPrefix(lines[i+1], "-") {
				b.WriteString("</ul>\n")
				inList = false
			}
		case rule.IsHeading(line):
			b.WriteString("<h2>" + escape(line) + "</h2>\n")
		default:
			b.WriteString("<p>" + escape(line) + "</p>\n")
		}
	}
	return b.String()
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
