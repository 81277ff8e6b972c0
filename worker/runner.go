// Package worker runs the per-job article pipeline in the background.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"auto_wordpress_article_publisher/generator"
	"auto_wordpress_article_publisher/model"
	"auto_wordpress_article_publisher/tracker"
)

// Progress checkpoints written before each stage starts.
const (
	percentChecking   = 10
	percentSubtopics  = 20
	percentPublishing = 90
	percentDone       = 100
)

// Assembler builds the article draft for a request.
type Assembler interface {
	Assemble(ctx context.Context, req model.GenerationRequest, obs generator.Observer) (generator.Draft, error)
}

// Publisher verifies destination credentials and publishes the article.
type Publisher interface {
	VerifyCredentials(ctx context.Context, creds model.Credentials) bool
	Publish(ctx context.Context, title, htmlBody string, creds model.Credentials) error
}

// Runner drives one job from credential check to publish, recording each stage in the tracker.
type Runner struct {
	jobs      *tracker.Tracker
	assembler Assembler
	publisher Publisher
	verbose   bool
	logger    *log.Logger
}

func NewRunner(jobs *tracker.Tracker, assembler Assembler, publisher Publisher, verbose bool, logger *log.Logger) (*Runner, error) {
	if jobs == nil || assembler == nil || publisher == nil {
		return nil, errors.New("tracker, assembler and publisher are required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{jobs: jobs, assembler: assembler, publisher: publisher, verbose: verbose, logger: logger}, nil
}

// Run executes the pipeline for job id until it reaches a terminal status. It never panics.
func (r *Runner) Run(ctx context.Context, id string, req model.GenerationRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fail(id, fmt.Sprint(rec))
		}
	}()

	creds := req.Credentials()

	r.set(id, tracker.StatusCheckingCredentials, percentChecking, "Verifying WordPress credentials...")
	if !r.publisher.VerifyCredentials(ctx, creds) {
		r.set(id, tracker.StatusInvalidCredentials, percentDone,
			"Invalid WordPress credentials. Please check your username and password.")
		return
	}

	r.set(id, tracker.StatusGeneratingSubtopics, percentSubtopics, "Fetching subtopics from AI...")
	draft, err := r.assembler.Assemble(ctx, req, jobObserver{runner: r, id: id})
	if errors.Is(err, generator.ErrOutlineUnavailable) {
		r.set(id, tracker.StatusFailedTopics, percentDone, "Failed to fetch subtopics from AI.")
		return
	}
	if err != nil {
		r.fail(id, err.Error())
		return
	}
	r.infof("job %s: %d sections, %d words", id, len(draft.Sections), draft.WordCount())

	r.set(id, tracker.StatusPublishing, percentPublishing, "Publishing article to WordPress...")
	if err := r.publisher.Publish(ctx, draft.Title, draft.HTML(), creds); err != nil {
		r.fail(id, err.Error())
		return
	}
	r.set(id, tracker.StatusCompleted, percentDone, "Article published successfully!")
}

func (r *Runner) fail(id, msg string) {
	r.logger.Printf("[ERROR] job %s: %s", id, msg)
	r.set(id, tracker.ErrorStatus(msg), percentDone, "An error occurred during article generation: "+msg)
}

func (r *Runner) set(id string, status tracker.Status, percent int, description string) {
	if err := r.jobs.Update(id, status, percent, description); err != nil {
		r.logger.Printf("[ERROR] job %s: update %q: %v", id, status, err)
		return
	}
	r.infof("job %s: %s (%d%%)", id, status, percent)
}

func (r *Runner) infof(format string, args ...interface{}) {
	if !r.verbose {
		return
	}
	r.logger.Printf("[INFO] "+format, args...)
}

// jobObserver forwards assembly progress into the tracker.
type jobObserver struct {
	runner *Runner
	id     string
}

func (o jobObserver) ContentStarted(int) {
	o.runner.set(o.id, tracker.StatusGeneratingContent, generator.ContentStartPercent, "Generating content for subtopics...")
}

func (o jobObserver) Progress(percent int, description string) {
	o.runner.set(o.id, tracker.StatusGeneratingContent, percent, description)
}
