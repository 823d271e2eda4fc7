package repository

import (
	"context"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrChatSessionNotFound is returned when a chat session is not found.
var ErrChatSessionNotFound = errors.New("chat session not found")

// ChatSessionRepository defines document-store operations over the chatSessions collection.
// Sessions are addressed by their token, which doubles as the document ID.
type ChatSessionRepository interface {
	// UpsertChatSession creates or replaces the session document for the token.
	UpsertChatSession(ctx context.Context, session *entity.ChatSession) error

	// FindChatSessionByToken retrieves a session by its token.
	FindChatSessionByToken(ctx context.Context, token string) (*entity.ChatSession, error)

	// LinkChatSessionToCustomer attaches customer identity to a session once
	// checkout occurs. Missing sessions are not an error: stale cookies happen.
	LinkChatSessionToCustomer(ctx context.Context, token, customerID, name, email string) error
}
