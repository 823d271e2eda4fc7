package usecase

import (
	"context"

	"lnlfit/internal/domain/entity"
)

// ChatInput is one turn of the lead-capture conversation.
type ChatInput struct {
	SessionToken  string               `json:"sessionToken"`
	Messages      []entity.ChatMessage `json:"messages" validate:"required,min=1,dive"`
	NewSession    bool                 `json:"newSession"`
	AffiliateCode string               `json:"affiliateCode"` // Cookie-carried attribution, captured at session creation.
}

// ChatOutput carries the assistant reply and the (possibly new) session token.
type ChatOutput struct {
	Reply        string `json:"reply"`
	SessionToken string `json:"sessionToken"`
}

// ChatUsecase runs the lead-capture assistant: it generates a reply, persists
// the conversation and, once enough turns exist, extracts a structured
// customer profile for later plan generation. Upstream failures degrade to a
// static fallback reply rather than an error.
type ChatUsecase interface {
	Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error)
}
