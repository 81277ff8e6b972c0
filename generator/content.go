package generator

import (
	"context"
	"errors"
	"log"
	"strings"
)

// ContentClient wraps an LLMClient with a fail-soft contract: a failed or empty
// completion is logged and reported as "no content" instead of an error.
type ContentClient struct {
	llm     LLMClient
	verbose bool
	logger  *log.Logger
}

func NewContentClient(llm LLMClient, verbose bool, logger *log.Logger) (*ContentClient, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ContentClient{llm: llm, verbose: verbose, logger: logger}, nil
}

// Generate performs a single completion attempt. ok is false when nothing usable came back.
func (c *ContentClient) Generate(ctx context.Context, prompt Prompt) (text string, ok bool) {
	c.infof("Sending request to AI")
	out, err := c.llm.Complete(ctx, prompt)
	if err != nil {
		c.logger.Printf("[ERROR] API request failed: %v", err)
		return "", false
	}
	if strings.TrimSpace(out) == "" {
		c.logger.Printf("[ERROR] API request returned no content")
		return "", false
	}
	c.infof("AI request successful")
	return out, true
}

func (c *ContentClient) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}
