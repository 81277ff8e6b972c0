package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitOutline drops the header line and returns the cleaned, non-empty subtopics in order.
func SplitOutline(raw string) []string {
	lines := strings.Split(raw, "\n")
	if len(lines) <= 1 {
		return nil
	}
	var topics []string
	for _, line := range lines[1:] {
		if t := Clean(line); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// FallbackTitle is used when the model does not produce a title.
func FallbackTitle(topic string) string {
	return "Exploring " + capitalize(topic)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
