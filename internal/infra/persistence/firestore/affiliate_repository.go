package firestore

import (
	"context"
	"time"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// affiliateRepository implements repository.AffiliateRepository on Firestore.
// Counters use Firestore's atomic increments so concurrent clicks and
// conversions never lose updates.
type affiliateRepository struct {
	client *firestore.Client
}

// NewAffiliateRepository is the constructor for affiliateRepository.
func NewAffiliateRepository(client *firestore.Client) repository.AffiliateRepository {
	return &affiliateRepository{client: client}
}

func (repo *affiliateRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionAffiliates)
}

// CreateAffiliate persists a new affiliate with a generated ID.
func (repo *affiliateRepository) CreateAffiliate(ctx context.Context, affiliate *entity.Affiliate) (string, error) {
	ref := repo.collection().NewDoc()
	if _, err := ref.Create(ctx, affiliate); err != nil {
		return "", errors.Wrap(err, "failed to create affiliate")
	}
	affiliate.ID = ref.ID

	return ref.ID, nil
}

// FindActiveAffiliateByCode retrieves an active affiliate by normalized code.
func (repo *affiliateRepository) FindActiveAffiliateByCode(ctx context.Context, code string) (*entity.Affiliate, error) {
	iter := repo.collection().
		Where("code", "==", code).
		Where("status", "==", entity.AffiliateStatusActive).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err != nil {
		if errors.Is(err, iterator.Done) {
			return nil, errors.WithStack(repository.ErrAffiliateNotFound)
		}

		return nil, errors.Wrap(err, "failed to query affiliate by code")
	}

	var affiliate entity.Affiliate
	if err := snap.DataTo(&affiliate); err != nil {
		return nil, errors.Wrap(err, "failed to decode affiliate")
	}
	affiliate.ID = snap.Ref.ID

	return &affiliate, nil
}

// RecordClick appends a click log entry and bumps the affiliate's counters.
// The log write comes first: a counter without its log entry is worse for
// auditing than the reverse.
func (repo *affiliateRepository) RecordClick(ctx context.Context, affiliateID string, click *entity.AffiliateClick) error {
	clickRef := repo.client.Collection(constants.CollectionAffiliateClicks).NewDoc()
	if _, err := clickRef.Create(ctx, click); err != nil {
		return errors.Wrap(err, "failed to create click record")
	}
	click.ID = clickRef.ID

	_, err := repo.collection().Doc(affiliateID).Update(ctx, []firestore.Update{
		{Path: "totalClicks", Value: firestore.Increment(1)},
		{Path: "lastClickAt", Value: click.Timestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrAffiliateNotFound)
		}

		return errors.Wrap(err, "failed to update click counters")
	}

	return nil
}

// RecordConversion bumps the conversion, revenue and pending-commission
// counters for one paid order.
func (repo *affiliateRepository) RecordConversion(ctx context.Context, affiliateID string, revenue, commission int64, at time.Time) error {
	_, err := repo.collection().Doc(affiliateID).Update(ctx, []firestore.Update{
		{Path: "totalConversions", Value: firestore.Increment(1)},
		{Path: "totalRevenue", Value: firestore.Increment(revenue)},
		{Path: "pendingCommission", Value: firestore.Increment(commission)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrAffiliateNotFound)
		}

		return errors.Wrap(err, "failed to update conversion counters")
	}

	return nil
}

// CreateCommission persists a commission record with a generated ID.
func (repo *affiliateRepository) CreateCommission(ctx context.Context, commission *entity.AffiliateCommission) (string, error) {
	ref := repo.client.Collection(constants.CollectionAffiliateCommissions).NewDoc()
	if _, err := ref.Create(ctx, commission); err != nil {
		return "", errors.Wrap(err, "failed to create commission")
	}
	commission.ID = ref.ID

	return ref.ID, nil
}

// ListAffiliates returns affiliates ordered by creation time descending.
func (repo *affiliateRepository) ListAffiliates(ctx context.Context) ([]*entity.Affiliate, error) {
	iter := repo.collection().OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var affiliates []*entity.Affiliate
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to list affiliates")
		}

		var affiliate entity.Affiliate
		if err := snap.DataTo(&affiliate); err != nil {
			return nil, errors.Wrap(err, "failed to decode affiliate")
		}
		affiliate.ID = snap.Ref.ID
		affiliates = append(affiliates, &affiliate)
	}

	return affiliates, nil
}
