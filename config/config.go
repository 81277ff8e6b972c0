// Package config loads service configuration from a JSON or YAML file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr     = ":3000"
	DefaultTrackerBaseURL = "https://tracker-three-nu.vercel.app/"
	DefaultProvider       = "cloudflare"
	DefaultModel          = "@cf/meta/llama-3-8b-instruct"
	DefaultRequestLogPath = "user_requests.json"
	DefaultWordCount      = 4000
)

// Config holds everything the server and the one-shot CLI need.
type Config struct {
	ServerAddr        string           `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	TrackerBaseURL    string           `json:"tracker_base_url,omitempty" yaml:"tracker_base_url,omitempty"`
	DefaultWordCount  int              `json:"default_word_count,omitempty" yaml:"default_word_count,omitempty"`
	MaxConcurrentJobs int              `json:"max_concurrent_jobs,omitempty" yaml:"max_concurrent_jobs,omitempty"`
	Verbose           bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	LLM               LLMConfig        `json:"llm" yaml:"llm"`
	WordPress         WordPressConfig  `json:"wordpress" yaml:"wordpress"`
	RequestLog        RequestLogConfig `json:"request_log" yaml:"request_log"`
	Formatter         FormatterConfig  `json:"formatter" yaml:"formatter"`
}

// LLMConfig selects the text-generation provider.
type LLMConfig struct {
	Provider  string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
}

// WordPressConfig controls how destination sites are reached.
type WordPressConfig struct {
	Scheme         string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the HTTP timeout for WordPress calls.
func (w WordPressConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// RequestLogConfig selects the audit log backend.
type RequestLogConfig struct {
	Driver      string `json:"driver,omitempty" yaml:"driver,omitempty"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
}

// FormatterConfig picks how generated sections become HTML.
type FormatterConfig struct {
	// Mode is "heuristic" (line classification) or "markdown".
	Mode           string `json:"mode,omitempty" yaml:"mode,omitempty"`
	HeadingPattern string `json:"heading_pattern,omitempty" yaml:"heading_pattern,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ServerAddr:       DefaultServerAddr,
		TrackerBaseURL:   DefaultTrackerBaseURL,
		DefaultWordCount: DefaultWordCount,
		LLM: LLMConfig{
			Provider: DefaultProvider,
			Model:    DefaultModel,
		},
		WordPress: WordPressConfig{
			Scheme:         "https",
			TimeoutSeconds: 60,
		},
		RequestLog: RequestLogConfig{
			Driver: "json",
			Path:   DefaultRequestLogPath,
		},
		Formatter: FormatterConfig{Mode: "heuristic"},
	}
}

// Load reads path (JSON, or YAML for .yaml/.yml) over the defaults, then applies
// environment overrides and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		default:
			err = json.Unmarshal(data, &cfg)
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.ServerAddr = ":" + v
	}
	if v := os.Getenv("TRACKER_BASE_URL"); v != "" {
		c.TrackerBaseURL = v
	}
	if v := os.Getenv("MAX_CONCURRENT_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrentJobs = n
		}
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("CLOUDFLARE_ACCOUNT_ID"); v != "" {
		c.LLM.AccountID = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.RequestLog.DatabaseURL = v
	}
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "deepseek", "cloudflare", "gemini", "mock":
	default:
		return fmt.Errorf("config error: llm provider %q not supported", c.LLM.Provider)
	}
	switch c.RequestLog.Driver {
	case "json", "sqlite", "postgres":
	default:
		return fmt.Errorf("config error: request_log driver %q not supported", c.RequestLog.Driver)
	}
	if c.RequestLog.Driver == "postgres" && c.RequestLog.DatabaseURL == "" {
		return fmt.Errorf("config error: request_log driver postgres requires database_url")
	}
	switch c.Formatter.Mode {
	case "heuristic", "markdown":
	default:
		return fmt.Errorf("config error: formatter mode %q not supported", c.Formatter.Mode)
	}
	if c.Formatter.HeadingPattern != "" {
		if _, err := regexp.Compile(c.Formatter.HeadingPattern); err != nil {
			return fmt.Errorf("config error: heading_pattern: %w", err)
		}
	}
	if c.WordPress.Scheme != "http" && c.WordPress.Scheme != "https" {
		return fmt.Errorf("config error: wordpress scheme must be http or https")
	}
	if c.MaxConcurrentJobs < 0 {
		return fmt.Errorf("config error: 'max_concurrent_jobs' must be non-negative")
	}
	if c.DefaultWordCount < 0 {
		return fmt.Errorf("config error: 'default_word_count' must be non-negative")
	}
	if _, err := url.Parse(c.TrackerBaseURL); err != nil || c.TrackerBaseURL == "" {
		return fmt.Errorf("config error: invalid tracker_base_url %q", c.TrackerBaseURL)
	}
	return nil
}
