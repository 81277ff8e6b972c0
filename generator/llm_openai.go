package generator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const cloudflareBaseURL = "https://api.cloudflare.com/client/v4/accounts/%s/ai/v1/"

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
// It also serves DeepSeek and Cloudflare Workers AI through their OpenAI-compatible endpoints.
type OpenAILLM struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	return newOpenAILLM(cfg)
}

// NewCloudflareLLM targets the Workers AI OpenAI-compatible endpoint of an account.
func NewCloudflareLLM(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.BaseURL == "" {
		if cfg.AccountID == "" {
			return nil, errors.New("llm provider cloudflare requires account_id or base_url")
		}
		c := *cfg
		c.BaseURL = fmt.Sprintf(cloudflareBaseURL, cfg.AccountID)
		cfg = &c
	}
	return newOpenAILLM(cfg)
}

func newOpenAILLM(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	// one attempt per call; callers treat failures as missing content
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
		openai.UserMessage(prompt.User),
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
