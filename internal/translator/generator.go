package translator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sevigo/goframe/llms"
)

// NewModelGenerator adapts a goframe model (ollama, gemini) to Generator.
func NewModelGenerator(model llms.Model) Generator {
	return &modelGenerator{model: model}
}

type modelGenerator struct {
	model llms.Model
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.model.Call(ctx, prompt)
}

// OpenAISettings configures the openai chat completion generator.
type OpenAISettings struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIGenerator creates a Generator backed by the official openai-go SDK.
// BaseURL may point at any OpenAI compatible endpoint.
func NewOpenAIGenerator(cfg OpenAISettings) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIGenerator{client: openai.NewClient(opts...), model: cfg.Model}, nil
}

type openAIGenerator struct {
	client openai.Client
	model  string
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
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
