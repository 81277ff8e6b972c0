package generator

import "strings"

// Section is one expanded outline entry.
type Section struct {
	Topic string
	Body  string
}

// HTML renders the section heading followed by its formatted body.
func (s Section) HTML() string {
	return "<h2>" + escape(s.Topic) + "</h2>\n" + s.Body + "\n\n"
}

// Draft is the article built so far, sections in outline order.
type Draft struct {
	Title    string
	Sections []Section
}

// HTML concatenates all section fragments.
func (d Draft) HTML() string {
	var b strings.Builder
	for _, s := range d.Sections {
		b.WriteString(s.HTML())
	}
	return b.String()
}

// WordCount counts whitespace-separated tokens of the rendered draft.
func (d Draft) WordCount() int {
	return countWords(d.HTML())
}
