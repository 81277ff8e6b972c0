package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"auto_wordpress_article_publisher/config"
	"auto_wordpress_article_publisher/generator"
	"auto_wordpress_article_publisher/publisher"
	"auto_wordpress_article_publisher/tracker"
	"auto_wordpress_article_publisher/worker"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "article_publisher",
	Short:         "Generate SEO articles with an LLM and publish them to WordPress",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json or config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable info logs")
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	// .env is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// buildRunner wires the LLM, formatter, assembler and WordPress publisher into a job runner.
// The returned cleanup releases the LLM client.
func buildRunner(ctx context.Context, cfg config.Config, jobs *tracker.Tracker) (*worker.Runner, func(), error) {
	llm, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := llm.(io.Closer); ok {
			_ = c.Close()
		}
	}

	formatter, err := buildFormatter(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	content, err := generator.NewContentClient(llm, cfg.Verbose, log.Default())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	assembler, err := generator.NewAssembler(content, formatter, log.Default())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	pub := publisher.New(publisher.Options{
		Scheme:  cfg.WordPress.Scheme,
		Timeout: cfg.WordPress.Timeout(),
		Verbose: cfg.Verbose,
	}, nil, log.Default())

	runner, err := worker.NewRunner(jobs, assembler, pub, cfg.Verbose, log.Default())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return runner, cleanup, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		AccountID: cfg.LLM.AccountID,
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "cloudflare":
		return generator.NewCloudflareLLM(settings)
	case "gemini":
		return generator.NewGeminiLLM(ctx, settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func buildFormatter(cfg config.Config) (generator.Formatter, error) {
	if cfg.Formatter.Mode == "markdown" {
		return generator.NewMarkdownFormatter(), nil
	}
	if cfg.Formatter.HeadingPattern == "" {
		return generator.ParagraphFormatter{}, nil
	}
	rule, err := generator.NewPatternRule(cfg.Formatter.HeadingPattern)
	if err != nil {
		return nil, fmt.Errorf("heading pattern: %w", err)
	}
	return generator.ParagraphFormatter{Headings: rule}, nil
}
