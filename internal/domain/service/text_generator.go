package service

import (
	"context"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrTextServiceUnavailable is returned when the generative text service
// responds with a non-success status. The caller decides whether to degrade
// or fail; this package never retries.
var ErrTextServiceUnavailable = errors.New("text generation service unavailable")

// CompletionRequest describes a single chat-completion call.
type CompletionRequest struct {
	Model        string               // Model override; empty selects the configured default.
	SystemPrompt string               // Fixed instruction prompt.
	Messages     []entity.ChatMessage // Conversation history, oldest first.
	MaxTokens    int
	Temperature  float32
}

// TextGenerator defines the interface to a generative text service.
// One completion string per call; no streaming.
type TextGenerator interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}
