package generator

import (
	"context"
	"errors"
	"log"

	"auto_wordpress_article_publisher/model"
)

// ErrOutlineUnavailable means the model returned no outline, so no article can be built.
var ErrOutlineUnavailable = errors.New("failed to fetch subtopics from AI")

// Content generation reports progress inside this band.
const (
	ContentStartPercent   = 30
	ContentCeilingPercent = 80
)

// Observer receives progress from Assemble.
type Observer interface {
	// ContentStarted fires once the outline is known and before the first expansion.
	ContentStarted(subtopics int)
	// Progress fires before each subtopic is expanded.
	Progress(percent int, description string)
}

// Assembler drives outline retrieval and per-section expansion.
type Assembler struct {
	content   *ContentClient
	formatter Formatter
	logger    *log.Logger
}

func NewAssembler(content *ContentClient, formatter Formatter, logger *log.Logger) (*Assembler, error) {
	if content == nil {
		return nil, errors.New("content client is required")
	}
	if formatter == nil {
		formatter = ParagraphFormatter{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Assembler{content: content, formatter: formatter, logger: logger}, nil
}

// GenerateTitle asks for one SEO title and falls back to "Exploring <Topic>".
func (a *Assembler) GenerateTitle(ctx context.Context, topic string) string {
	if raw, ok := a.content.Generate(ctx, BuildTitlePrompt(topic)); ok {
		if title := Clean(raw); title != "" {
			return title
		}
	}
	return FallbackTitle(topic)
}

// GetOutline returns the raw outline text.
func (a *Assembler) GetOutline(ctx context.Context, topic string) (string, bool) {
	return a.content.Generate(ctx, BuildOutlinePrompt(topic))
}

// ExpandSection returns the body text for one outline entry.
func (a *Assembler) ExpandSection(ctx context.Context, section, parentTopic string) (string, bool) {
	return a.content.Generate(ctx, BuildSectionPrompt(section, parentTopic))
}

// Assemble builds the draft for req. Subtopics whose expansion fails are skipped;
// iteration stops as soon as the draft reaches req.WordCount words.
func (a *Assembler) Assemble(ctx context.Context, req model.GenerationRequest, obs Observer) (Draft, error) {
	if obs == nil {
		obs = nopObserver{}
	}

	outline, ok := a.GetOutline(ctx, req.Topic)
	if !ok {
		return Draft{}, ErrOutlineUnavailable
	}
	topics := SplitOutline(outline)
	draft := Draft{Title: a.GenerateTitle(ctx, req.Topic)}

	obs.ContentStarted(len(topics))
	for i, topic := range topics {
		obs.Progress(progressPercent(i, len(topics)), "Generating content for "+topic+"...")

		body, ok := a.ExpandSection(ctx, topic, req.Topic)
		if !ok {
			a.logger.Printf("[ERROR] skipping subtopic %q: no content", topic)
			continue
		}
		draft.Sections = append(draft.Sections, Section{Topic: topic, Body: a.formatter.Format(body)})
		if draft.WordCount() >= req.WordCount {
			break
		}
	}
	return draft, nil
}

func progressPercent(processed, total int) int {
	if total <= 0 {
		return ContentStartPercent
	}
	p := ContentStartPercent + processed*(ContentCeilingPercent-ContentStartPercent)/total
	if p > ContentCeilingPercent {
		p = ContentCeilingPercent
	}
	return p
}

type nopObserver struct{}

func (nopObserver) ContentStarted(int) {}
func (nopObserver) Progress(int, string) {}
