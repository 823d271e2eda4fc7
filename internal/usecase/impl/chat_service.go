package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/plan"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/domain/service"
	"lnlfit/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// fallbackReply keeps the widget conversational when the text service is down.
const fallbackReply = "Thanks for reaching out! Our assistant is taking a short break. " +
	"Please leave your name and goal, or check back in a few minutes."

// extractionThreshold is the minimum number of stored messages before profile
// extraction is attempted. Shorter conversations rarely contain enough signal.
const extractionThreshold = 6

// ChatConfig carries the assistant and extraction invocation parameters.
type ChatConfig struct {
	ChatModel        string
	ExtractionModel  string
	ChatPrompt       string
	ExtractionPrompt string
}

type chatService struct {
	sessionRepo repository.ChatSessionRepository
	generator   service.TextGenerator
	cfg         ChatConfig
	logger      *slog.Logger
}

// NewChatService creates the lead-capture assistant.
func NewChatService(
	sessionRepo repository.ChatSessionRepository,
	generator service.TextGenerator,
	cfg ChatConfig,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		sessionRepo: sessionRepo,
		generator:   generator,
		cfg:         cfg,
		logger:      logger,
	}
}

// Chat generates one assistant reply and persists the updated conversation.
// Generator failures degrade to a static fallback reply; persistence failures
// are logged but never surfaced, since the visitor already has their answer.
func (s *chatService) Chat(ctx context.Context, input *usecase.ChatInput) (*usecase.ChatOutput, error) {
	session := s.loadOrCreateSession(ctx, input)

	reply, err := s.generator.Complete(ctx, &service.CompletionRequest{
		Model:        s.cfg.ChatModel,
		SystemPrompt: s.cfg.ChatPrompt,
		Messages:     input.Messages,
		MaxTokens:    200,
		Temperature:  0.7,
	})
	if err != nil {
		s.logger.Error("[Chat] Assistant completion failed, using fallback reply",
			slog.String("session_token", session.Token),
			slog.Any("error", err),
		)
		reply = fallbackReply
	}

	now := time.Now()
	session.Messages = append(input.Messages, entity.ChatMessage{
		Role:    entity.ChatRoleAssistant,
		Content: reply,
	})
	session.MessageCount = len(session.Messages)
	session.UpdatedAt = now

	if session.MessageCount >= extractionThreshold {
		if profile := s.extractProfile(ctx, session); profile != nil {
			session.ExtractedProfile = profile
		}
	}

	if err := s.sessionRepo.UpsertChatSession(ctx, session); err != nil {
		s.logger.Error("[Chat] Failed to persist chat session",
			slog.String("session_token", session.Token),
			slog.Any("error", err),
		)
	}

	return &usecase.ChatOutput{
		Reply:        reply,
		SessionToken: session.Token,
	}, nil
}

// loadOrCreateSession resolves the session for this turn. Unknown tokens get
// a fresh session rather than an error: cookies outlive server-side state.
func (s *chatService) loadOrCreateSession(ctx context.Context, input *usecase.ChatInput) *entity.ChatSession {
	if !input.NewSession && input.SessionToken != "" {
		session, err := s.sessionRepo.FindChatSessionByToken(ctx, input.SessionToken)
		if err == nil {
			return session
		}
		if !errors.Is(err, repository.ErrChatSessionNotFound) {
			s.logger.Error("[Chat] Chat session lookup failed",
				slog.String("session_token", input.SessionToken),
				slog.Any("error", err),
			)
		}
	}

	return &entity.ChatSession{
		Token:         uuid.NewString(),
		AffiliateCode: entity.NormalizeAffiliateCode(input.AffiliateCode),
		CreatedAt:     time.Now(),
	}
}

// extractProfile asks the extraction model for a structured profile snapshot
// of the conversation so far. Best-effort: any failure returns nil and the
// previously extracted profile (if any) is kept.
func (s *chatService) extractProfile(ctx context.Context, session *entity.ChatSession) *entity.CustomerProfile {
	content, err := s.generator.Complete(ctx, &service.CompletionRequest{
		Model:        s.cfg.ExtractionModel,
		SystemPrompt: s.cfg.ExtractionPrompt + renderConversation(session.Messages),
		Messages: []entity.ChatMessage{
			{Role: entity.ChatRoleUser, Content: "Extract the customer information as JSON."},
		},
		MaxTokens:   400,
		Temperature: 0,
	})
	if err != nil {
		s.logger.Warn("[Chat] Profile extraction request failed",
			slog.String("session_token", session.Token),
			slog.Any("error", err),
		)

		return nil
	}

	raw, err := plan.ExtractJSON(content)
	if err != nil {
		s.logger.Warn("[Chat] Profile extraction output unparseable",
			slog.String("session_token", session.Token),
		)

		return nil
	}

	var profile entity.CustomerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		s.logger.Warn("[Chat] Profile extraction output did not match schema",
			slog.String("session_token", session.Token),
			slog.Any("error", err),
		)

		return nil
	}

	return &profile
}

func renderConversation(messages []entity.ChatMessage) string {
	var b strings.Builder
	for _, message := range messages {
		b.WriteString(message.Role)
		b.WriteString(": ")
		b.WriteString(message.Content)
		b.WriteString("\n")
	}

	return b.String()
}
