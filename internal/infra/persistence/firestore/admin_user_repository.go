package firestore

import (
	"context"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// adminUserRepository implements repository.AdminUserRepository on Firestore.
type adminUserRepository struct {
	client *firestore.Client
}

// NewAdminUserRepository is the constructor for adminUserRepository.
func NewAdminUserRepository(client *firestore.Client) repository.AdminUserRepository {
	return &adminUserRepository{client: client}
}

func (repo *adminUserRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionAdminUsers)
}

// CreateAdminUser persists a new admin account with a generated ID.
func (repo *adminUserRepository) CreateAdminUser(ctx context.Context, user *entity.AdminUser) (string, error) {
	ref := repo.collection().NewDoc()
	if _, err := ref.Create(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to create admin user")
	}
	user.ID = ref.ID

	return ref.ID, nil
}

// FindAdminUserByEmail retrieves an admin account by email.
func (repo *adminUserRepository) FindAdminUserByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	iter := repo.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, errors.WithStack(repository.ErrAdminUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to query admin user by email")
	}

	var user entity.AdminUser
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode admin user")
	}
	user.ID = snap.Ref.ID

	return &user, nil
}
