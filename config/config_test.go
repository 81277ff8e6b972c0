package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "TRACKER_BASE_URL", "MAX_CONCURRENT_JOBS", "LLM_PROVIDER", "LLM_MODEL",
		"LLM_API_KEY", "LLM_BASE_URL", "CLOUDFLARE_ACCOUNT_ID", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 60*time.Second, cfg.WordPress.Timeout())
}

func TestLoad_JSON(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.json", `{
		"server_addr": ":9090",
		"max_concurrent_jobs": 4,
		"llm": {"provider": "openai", "model": "gpt-4o-mini", "api_key": "sk-test"},
		"request_log": {"driver": "sqlite", "path": "data/requests.db"},
		"formatter": {"mode": "markdown"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 4, cfg.MaxConcurrentJobs)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sqlite", cfg.RequestLog.Driver)
	assert.Equal(t, "markdown", cfg.Formatter.Mode)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultTrackerBaseURL, cfg.TrackerBaseURL)
	assert.Equal(t, "https", cfg.WordPress.Scheme)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
server_addr: ":8081"
llm:
  provider: cloudflare
  account_id: acct-123
wordpress:
  scheme: http
  timeout_seconds: 5
formatter:
  heading_pattern: "^Part \\d+"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.ServerAddr)
	assert.Equal(t, "acct-123", cfg.LLM.AccountID)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
	assert.Equal(t, "http", cfg.WordPress.Scheme)
	assert.Equal(t, 5*time.Second, cfg.WordPress.Timeout())
	assert.Equal(t, `^Part \d+`, cfg.Formatter.HeadingPattern)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "4000")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "env-acct")
	t.Setenv("TRACKER_BASE_URL", "https://tracker.example.com/")
	t.Setenv("MAX_CONCURRENT_JOBS", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.ServerAddr)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "env-acct", cfg.LLM.AccountID)
	assert.Equal(t, "https://tracker.example.com/", cfg.TrackerBaseURL)
	assert.Equal(t, 2, cfg.MaxConcurrentJobs)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.json", `{ invalid json }`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "llm: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "llamafile" }, `llm provider "llamafile" not supported`},
		{"unknown driver", func(c *Config) { c.RequestLog.Driver = "redis" }, `request_log driver "redis" not supported`},
		{"postgres without url", func(c *Config) { c.RequestLog.Driver = "postgres" }, "requires database_url"},
		{"postgres with url", func(c *Config) {
			c.RequestLog.Driver = "postgres"
			c.RequestLog.DatabaseURL = "postgres://localhost/db"
		}, ""},
		{"unknown formatter", func(c *Config) { c.Formatter.Mode = "latex" }, `formatter mode "latex" not supported`},
		{"bad heading pattern", func(c *Config) { c.Formatter.HeadingPattern = "(" }, "heading_pattern"},
		{"bad scheme", func(c *Config) { c.WordPress.Scheme = "ftp" }, "scheme"},
		{"negative jobs", func(c *Config) { c.MaxConcurrentJobs = -1 }, "max_concurrent_jobs"},
		{"negative word count", func(c *Config) { c.DefaultWordCount = -5 }, "default_word_count"},
		{"empty tracker url", func(c *Config) { c.TrackerBaseURL = "" }, "tracker_base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
