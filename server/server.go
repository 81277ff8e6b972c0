// Package server exposes article job creation and progress polling over HTTP.
package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auto_wordpress_article_publisher/model"
	"auto_wordpress_article_publisher/requestlog"
	"auto_wordpress_article_publisher/tracker"
)

// Scheduler starts a job in the background without waiting for it.
type Scheduler interface {
	Dispatch(id string, req model.GenerationRequest)
}

// Options tunes request handling.
type Options struct {
	TrackerBaseURL   string
	DefaultWordCount int
	Verbose          bool
}

type Server struct {
	jobs        *tracker.Tracker
	scheduler   Scheduler
	requestLog  requestlog.Store
	trackerBase *url.URL
	wordCount   int
	verbose     bool
	logger      *log.Logger
}

func New(jobs *tracker.Tracker, scheduler Scheduler, requestLog requestlog.Store, opts Options, logger *log.Logger) (*Server, error) {
	if jobs == nil || scheduler == nil || requestLog == nil {
		return nil, errors.New("tracker, scheduler and request log are required")
	}
	base, err := url.Parse(opts.TrackerBaseURL)
	if err != nil {
		return nil, err
	}
	if opts.DefaultWordCount == 0 {
		opts.DefaultWordCount = model.DefaultWordCount
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		jobs:        jobs,
		scheduler:   scheduler,
		requestLog:  requestLog,
		trackerBase: base,
		wordCount:   opts.DefaultWordCount,
		verbose:     opts.Verbose,
		logger:      logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.verbose {
		r.Use(gin.LoggerWithWriter(s.logger.Writer()))
	}
	r.Use(cors.Default())

	r.POST("/api", s.handleCreateArticle)
	r.GET("/article/:trackingId", s.handleArticleStatus)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// --- Handlers ---

func (s *Server) handleCreateArticle(c *gin.Context) {
	req := model.GenerationRequest{WordCount: s.wordCount}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	req.CreatedAt = time.Now()

	id := uuid.NewString()
	s.jobs.Create(id)
	if err := s.requestLog.Append(c.Request.Context(), requestlog.NewRecord(id, req)); err != nil {
		s.logger.Printf("[ERROR] save request %s: %v", id, err)
	}
	s.scheduler.Dispatch(id, req)

	c.JSON(http.StatusAccepted, gin.H{
		"message":      "Article generation started",
		"tracking_url": s.trackingURL(id),
	})
}

func (s *Server) handleArticleStatus(c *gin.Context) {
	snap, err := s.jobs.Get(c.Param("trackingId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tracking ID not found"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// --- Helpers ---

func (s *Server) trackingURL(id string) string {
	u := *s.trackerBase
	q := u.Query()
	q.Set("articleId", id)
	u.RawQuery = q.Encode()
	return u.String()
}
