package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"auto_wordpress_article_publisher/requestlog"
	"auto_wordpress_article_publisher/server"
	"auto_wordpress_article_publisher/tracker"
	"auto_wordpress_article_publisher/worker"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Start the HTTP API that accepts article requests on POST /api and reports progress on GET /article/:trackingId.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "http listen address (overrides config server_addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs := tracker.New()
	runner, cleanup, err := buildRunner(ctx, cfg, jobs)
	if err != nil {
		return err
	}
	defer cleanup()

	reqLog, err := requestlog.Open(ctx, cfg.RequestLog.Driver, cfg.RequestLog.Path, cfg.RequestLog.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open request log: %w", err)
	}
	defer reqLog.Close()

	dispatcher := worker.NewDispatcher(runner, cfg.MaxConcurrentJobs, log.Default())
	srv, err := server.New(jobs, dispatcher, reqLog, server.Options{
		TrackerBaseURL:   cfg.TrackerBaseURL,
		DefaultWordCount: cfg.DefaultWordCount,
		Verbose:          cfg.Verbose,
	}, log.Default())
	if err != nil {
		return err
	}

	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	httpSrv := &http.Server{Addr: cfg.ServerAddr, Handler: srv.Routes()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting web server on %s", cfg.ServerAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] server shutdown failed: %v", err)
		}
		if err := dispatcher.Wait(shutdownCtx); err != nil {
			log.Printf("[ERROR] jobs still running at exit: %v", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Server exited properly")
	return nil
}
