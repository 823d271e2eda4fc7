// Package textgen implements the TextGenerator domain service on the OpenAI
// chat completions API.
package textgen

import (
	"context"
	"log/slog"
	"time"

	"lnlfit/config"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/service"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const defaultRequestTimeout = 60 * time.Second

// openAIGenerator implements service.TextGenerator using go-openai.
type openAIGenerator struct {
	client       *openai.Client
	defaultModel string
	timeout      time.Duration
	logger       *slog.Logger
}

// NewOpenAIGenerator is the constructor for openAIGenerator.
func NewOpenAIGenerator(cfg *config.Config, logger *slog.Logger) (service.TextGenerator, error) {
	if cfg.OpenAI == nil || cfg.OpenAI.APIKey == "" {
		return nil, errors.New("openai api key must be provided")
	}

	timeout := cfg.OpenAI.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &openAIGenerator{
		client:       openai.NewClient(cfg.OpenAI.APIKey),
		defaultModel: cfg.OpenAI.ChatModel,
		timeout:      timeout,
		logger:       logger,
	}, nil
}

// Complete sends one chat completion request and returns the first choice.
// API errors map to ErrTextServiceUnavailable so callers can degrade.
func (g *openAIGenerator) Complete(ctx context.Context, req *service.CompletionRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = g.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, message := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(message.Role),
			Content: message.Content,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		g.logger.Error("[OpenAI] Chat completion failed",
			slog.String("model", model),
			slog.Any("error", err),
		)

		return "", errors.Wrapf(service.ErrTextServiceUnavailable, "%v", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.Wrap(service.ErrTextServiceUnavailable, "response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func toOpenAIRole(role string) string {
	switch role {
	case entity.ChatRoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
