package generator

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_wordpress_article_publisher/model"
)

// scriptedLLM answers by prompt kind and records every call.
type scriptedLLM struct {
	mu       sync.Mutex
	title    func() (string, error)
	outline  func() (string, error)
	section  func(user string) (string, error)
	sections []string
}

func (s *scriptedLLM) Complete(_ context.Context, p Prompt) (string, error) {
	switch p.System {
	case titleSystem:
		if s.title == nil {
			return "Generated Title", nil
		}
		return s.title()
	case outlineSystem:
		return s.outline()
	default:
		s.mu.Lock()
		s.sections = append(s.sections, p.User)
		s.mu.Unlock()
		return s.section(p.User)
	}
}

func (s *scriptedLLM) sectionCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sections...)
}

type recordingObserver struct {
	started  int
	percents []int
	descs    []string
}

func (r *recordingObserver) ContentStarted(n int) { r.started = n }
func (r *recordingObserver) Progress(p int, d string) {
	r.percents = append(r.percents, p)
	r.descs = append(r.descs, d)
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestAssembler(t *testing.T, llm LLMClient) *Assembler {
	t.Helper()
	cc, err := NewContentClient(llm, false, quietLogger())
	require.NoError(t, err)
	a, err := NewAssembler(cc, nil, quietLogger())
	require.NoError(t, err)
	return a
}

func staticOutline(s string) func() (string, error) {
	return func() (string, error) { return s, nil }
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestAssemble_OutlineUnavailable(t *testing.T) {
	llm := &scriptedLLM{
		outline: func() (string, error) { return "", errors.New("upstream down") },
		section: func(string) (string, error) { return "x", nil },
	}
	a := newTestAssembler(t, llm)

	_, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 100}, nil)
	assert.ErrorIs(t, err, ErrOutlineUnavailable)
	assert.Empty(t, llm.sectionCalls())
}

func TestAssemble_NeverExpandsHeaderLine(t *testing.T) {
	llm := &scriptedLLM{
		outline: staticOutline("Header Line For The Outline\n1. Alpha\n\n2. Beta"),
		section: func(string) (string, error) { return "short", nil },
	}
	a := newTestAssembler(t, llm)

	draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 10000}, nil)
	require.NoError(t, err)

	calls := llm.sectionCalls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.NotContains(t, c, "Header Line")
	}
	assert.Contains(t, calls[0], "'go - 1. Alpha'")
	assert.Contains(t, calls[1], "'go - 2. Beta'")
	require.Len(t, draft.Sections, 2)
	assert.Equal(t, "1. Alpha", draft.Sections[0].Topic)
	assert.Equal(t, "<p>short</p>\n", draft.Sections[0].Body)
}

func TestAssemble_StopsOnceWordCountReached(t *testing.T) {
	llm := &scriptedLLM{
		outline: staticOutline("Outline\nA\nB\nC\nD"),
		section: func(string) (string, error) { return words(10), nil },
	}
	a := newTestAssembler(t, llm)

	// one section renders to 11 tokens, two sections to 22
	draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 15}, nil)
	require.NoError(t, err)

	assert.Len(t, llm.sectionCalls(), 2)
	assert.Len(t, draft.Sections, 2)
	assert.GreaterOrEqual(t, draft.WordCount(), 15)
}

func TestAssemble_SkipsFailedSections(t *testing.T) {
	llm := &scriptedLLM{
		outline: staticOutline("Outline\nA\nB\nC"),
		section: func(user string) (string, error) {
			if strings.Contains(user, "- B'") {
				return "", errors.New("timeout")
			}
			return "body", nil
		},
	}
	a := newTestAssembler(t, llm)

	draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 10000}, nil)
	require.NoError(t, err)
	assert.Len(t, llm.sectionCalls(), 3)
	require.Len(t, draft.Sections, 2)
	assert.Equal(t, "A", draft.Sections[0].Topic)
	assert.Equal(t, "C", draft.Sections[1].Topic)
}

func TestAssemble_FailedSectionDoesNotCountTowardTarget(t *testing.T) {
	llm := &scriptedLLM{
		outline: staticOutline("Outline\nA\nB\nC"),
		section: func(user string) (string, error) {
			if strings.Contains(user, "- A'") {
				return "", errors.New("boom")
			}
			return words(5), nil
		},
	}
	a := newTestAssembler(t, llm)

	draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, llm.sectionCalls(), 2, "C must not be expanded once B reached the target")
	require.Len(t, draft.Sections, 1)
	assert.Equal(t, "B", draft.Sections[0].Topic)
}

func TestAssemble_ReportsProgressWithinBand(t *testing.T) {
	llm := &scriptedLLM{
		outline: staticOutline("Outline\nA\nB\nC"),
		section: func(string) (string, error) { return "x", nil },
	}
	a := newTestAssembler(t, llm)
	obs := &recordingObserver{}

	_, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go", WordCount: 10000}, obs)
	require.NoError(t, err)

	assert.Equal(t, 3, obs.started)
	assert.Equal(t, []int{30, 46, 63}, obs.percents)
	assert.Equal(t, "Generating content for A...", obs.descs[0])
	for i := 1; i < len(obs.percents); i++ {
		assert.GreaterOrEqual(t, obs.percents[i], obs.percents[i-1])
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 30, progressPercent(0, 0))
	assert.Equal(t, 30, progressPercent(0, 4))
	assert.Equal(t, 55, progressPercent(2, 4))
	assert.Equal(t, 80, progressPercent(4, 4))
	assert.Equal(t, 80, progressPercent(9, 4))
}

func TestAssemble_Title(t *testing.T) {
	tests := []struct {
		name  string
		title func() (string, error)
		want  string
	}{
		{"cleaned", func() (string, error) { return `**"A Great Title"**`, nil }, "A Great Title"},
		{"fallback on error", func() (string, error) { return "", errors.New("no") }, "Exploring Go tips"},
		{"fallback on noise only", func() (string, error) { return "****", nil }, "Exploring Go tips"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{
				title:   tt.title,
				outline: staticOutline("Outline"),
				section: func(string) (string, error) { return "x", nil },
			}
			a := newTestAssembler(t, llm)
			draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "go tips", WordCount: 10}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, draft.Title)
			assert.Empty(t, draft.Sections)
		})
	}
}

func TestContentClient_FailSoft(t *testing.T) {
	_, err := NewContentClient(nil, false, nil)
	assert.Error(t, err)

	tests := []struct {
		name   string
		out    string
		err    error
		wantOK bool
	}{
		{"success", "text", nil, true},
		{"error", "", errors.New("503"), false},
		{"blank", "  \n", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{outline: func() (string, error) { return tt.out, tt.err }}
			cc, err := NewContentClient(llm, true, quietLogger())
			require.NoError(t, err)
			text, ok := cc.Generate(context.Background(), BuildOutlinePrompt("x"))
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.out, text)
			} else {
				assert.Empty(t, text)
			}
		})
	}
}

func TestMockLLM_DrivesAssembler(t *testing.T) {
	a := newTestAssembler(t, MockLLM{})
	draft, err := a.Assemble(context.Background(), model.GenerationRequest{Topic: "gardening", WordCount: 10000}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A Friendly Guide to Your Topic", draft.Title)
	assert.Len(t, draft.Sections, 4)
	assert.Contains(t, draft.HTML(), "<h2>Overview:</h2>")
	assert.Contains(t, draft.HTML(), "<li>it does not call a model</li>")
}
