package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"auto_wordpress_article_publisher/model"
	"auto_wordpress_article_publisher/tracker"
	"auto_wordpress_article_publisher/worker"
)

var genReq model.GenerationRequest

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish one article, printing progress until it finishes",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genReq.Username, "username", "", "WordPress username")
	f.StringVar(&genReq.Password, "password", "", "WordPress application password")
	f.StringVar(&genReq.Site, "site", "", "WordPress site host, e.g. blog.example.com")
	f.StringVar(&genReq.Topic, "topic", "", "article topic")
	f.IntVar(&genReq.WordCount, "words", 0, "target word count (default from config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := genReq.Validate(); err != nil {
		return errors.New("--username, --password, --site, and --topic are required")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req := genReq
	if !cmd.Flags().Changed("words") {
		req.WordCount = cfg.DefaultWordCount
	}
	req.CreatedAt = time.Now()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	jobs := tracker.New()
	runner, cleanup, err := buildRunner(ctx, cfg, jobs)
	if err != nil {
		return err
	}
	defer cleanup()

	id := uuid.NewString()
	jobs.Create(id)
	log.Printf("[cli] generating topic=%q site=%s words=%d id=%s", req.Topic, req.Site, req.WordCount, id)

	dispatcher := worker.NewDispatcher(runner, 0, log.Default())
	dispatcher.Dispatch(id, req)

	final := watch(jobs, id, 500*time.Millisecond)
	if err := dispatcher.Wait(ctx); err != nil {
		return err
	}
	if final.Status != tracker.StatusCompleted {
		return fmt.Errorf("article not published: %s: %s", final.Status, final.Description)
	}
	fmt.Println(id)
	return nil
}

// watch polls the tracker like the HTTP client would, logging each change, until the job is terminal.
func watch(jobs *tracker.Tracker, id string, every time.Duration) tracker.Snapshot {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last tracker.Snapshot
	for {
		snap, err := jobs.Get(id)
		if err == nil && snap != last {
			log.Printf("[cli] %3d%% %s: %s", snap.Percentage, snap.Status, snap.Description)
			last = snap
		}
		if snap.Status.Terminal() {
			return snap
		}
		<-ticker.C
	}
}
