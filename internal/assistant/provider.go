package assistant

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Provider is the completion capability the assistant talks to. One
// implementation wraps an LLM API; tests substitute a canned one.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type openAIProvider struct {
	model llms.Model
}

// NewOpenAIProvider builds a provider backed by the OpenAI chat API.
func NewOpenAIProvider(apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New("assistant: api key is required")
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &openAIProvider{model: llm}, nil
}

func (p *openAIProvider) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := p.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		// Low temperature: the assistant recites warehouse state, it
		// does not improvise.
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("assistant: empty completion")
	}
	return resp.Choices[0].Content, nil
}
