package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"auto_wordpress_article_publisher/model"
)

const (
	postsPath = "/wp-json/wp/v2/posts"

	demoTitle   = "Demo Post"
	demoContent = "This is a demo post to verify WordPress credentials."
)

// Options configures a Publisher. Zero values fall back to https and a 60s timeout.
type Options struct {
	Scheme  string
	Timeout time.Duration
	Verbose bool
}

type post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Excerpt string `json:"excerpt,omitempty"`
}

type createPostResp struct {
	ID int64 `json:"id"`
}

// Publisher posts articles to a WordPress site through its REST API using basic auth.
type Publisher struct {
	client  *http.Client
	scheme  string
	verbose bool
	logger  *log.Logger
}

// New creates a Publisher. A nil client gets one with opts.Timeout.
func New(opts Options, client *http.Client, logger *log.Logger) *Publisher {
	if opts.Scheme == "" {
		opts.Scheme = "https"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{client: client, scheme: opts.Scheme, verbose: opts.Verbose, logger: logger}
}

func (p *Publisher) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}

func (p *Publisher) endpoint(site string) string {
	return p.scheme + "://" + site + postsPath
}

// VerifyCredentials creates a throwaway draft and deletes it again. Only a 201 on the
// create counts as valid; the delete is best effort.
func (p *Publisher) VerifyCredentials(ctx context.Context, creds model.Credentials) bool {
	endpoint := p.endpoint(creds.Site)
	resp, err := p.postJSON(ctx, endpoint, creds, post{Title: demoTitle, Content: demoContent, Status: "draft"})
	if err != nil {
		p.logger.Printf("[ERROR] WordPress credentials check failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		p.logger.Printf("[ERROR] WordPress credentials check failed: %s", resp.Status)
		return false
	}

	var created createPostResp
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		p.logger.Printf("[ERROR] WordPress credentials check: decode demo post: %v", err)
		return true
	}
	p.infof("Credentials valid for %s, removing demo post %d", creds.Site, created.ID)
	p.deletePost(ctx, endpoint, creds, created.ID)
	return true
}

func (p *Publisher) deletePost(ctx context.Context, endpoint string, creds model.Credentials, id int64) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint+"/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	resp, err := p.client.Do(req)
	if err != nil {
		p.infof("Demo post cleanup failed: %v", err)
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// Excerpt is the summary attached to every published article.
func Excerpt(title string) string {
	return fmt.Sprintf("Explore an in-depth comparison of %s. Discover key features, user engagement, and more.", title)
}

// Publish creates a published post. Any outcome other than 201 is returned as a *PublishError.
func (p *Publisher) Publish(ctx context.Context, title, htmlBody string, creds model.Credentials) error {
	p.infof("Publishing article: %q to WordPress...", title)
	resp, err := p.postJSON(ctx, p.endpoint(creds.Site), creds, post{
		Title:   title,
		Content: htmlBody,
		Status:  "publish",
		Excerpt: Excerpt(title),
	})
	if err != nil {
		return &PublishError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		p.logger.Printf("[ERROR] Failed to post to WordPress: %s", resp.Status)
		return &PublishError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	p.infof("Article successfully posted to WordPress")
	return nil
}

func (p *Publisher) postJSON(ctx context.Context, endpoint string, creds model.Credentials, body post) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(creds.Username, creds.Password)
	return p.client.Do(req)
}
