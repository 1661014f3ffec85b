package excerpt

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements LLMClient using the official openai-go SDK (chat
// completions).
type OpenAI struct {
	Model string
	Opts  []option.RequestOption
}

// NewFromSettings builds an LLM client for the configured provider. The
// deepseek provider speaks the OpenAI-compatible protocol and therefore
// requires a base URL.
func NewFromSettings(cfg *Settings) (LLMClient, error) {
	if cfg == nil || cfg.Provider == "" {
		return nil, errors.New("llm config missing; set llm.provider/model/api_key in config")
	}
	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg)
	case "deepseek":
		if cfg.BaseURL == "" {
			return nil, errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

func newOpenAI(cfg *Settings) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
