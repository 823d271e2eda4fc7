package firestore

import (
	"context"
	"time"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// chatSessionRepository implements repository.ChatSessionRepository on
// Firestore. The session token doubles as the document ID.
type chatSessionRepository struct {
	client *firestore.Client
}

// NewChatSessionRepository is the constructor for chatSessionRepository.
func NewChatSessionRepository(client *firestore.Client) repository.ChatSessionRepository {
	return &chatSessionRepository{client: client}
}

func (repo *chatSessionRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionChatSessions)
}

// UpsertChatSession creates or replaces the session document for the token.
func (repo *chatSessionRepository) UpsertChatSession(ctx context.Context, session *entity.ChatSession) error {
	if session.Token == "" {
		return errors.New("session token is required")
	}

	if _, err := repo.collection().Doc(session.Token).Set(ctx, session); err != nil {
		return errors.Wrap(err, "failed to upsert chat session")
	}

	return nil
}

// FindChatSessionByToken retrieves a session by its token.
func (repo *chatSessionRepository) FindChatSessionByToken(ctx context.Context, token string) (*entity.ChatSession, error) {
	snap, err := repo.collection().Doc(token).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrChatSessionNotFound)
		}

		return nil, errors.Wrap(err, "failed to get chat session")
	}

	var session entity.ChatSession
	if err := snap.DataTo(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode chat session")
	}
	session.Token = snap.Ref.ID

	return &session, nil
}

// LinkChatSessionToCustomer attaches customer identity to a session once
// checkout occurs. A missing session maps to ErrChatSessionNotFound; callers
// treat that as non-fatal.
func (repo *chatSessionRepository) LinkChatSessionToCustomer(ctx context.Context, token, customerID, name, email string) error {
	_, err := repo.collection().Doc(token).Update(ctx, []firestore.Update{
		{Path: "customerId", Value: customerID},
		{Path: "customerName", Value: name},
		{Path: "customerEmail", Value: email},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrChatSessionNotFound)
		}

		return errors.Wrap(err, "failed to link chat session to customer")
	}

	return nil
}
