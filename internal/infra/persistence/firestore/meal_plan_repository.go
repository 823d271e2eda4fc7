package firestore

import (
	"context"
	"encoding/json"
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

// mealPlanRepository implements repository.MealPlanRepository on Firestore.
type mealPlanRepository struct {
	client *firestore.Client
}

// NewMealPlanRepository is the constructor for mealPlanRepository.
func NewMealPlanRepository(client *firestore.Client) repository.MealPlanRepository {
	return &mealPlanRepository{client: client}
}

func (repo *mealPlanRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionMealPlans)
}

// CreateMealPlan persists a new plan document with a generated ID.
func (repo *mealPlanRepository) CreateMealPlan(ctx context.Context, plan *entity.MealPlan) (string, error) {
	ref := repo.collection().NewDoc()
	if _, err := ref.Create(ctx, plan); err != nil {
		return "", errors.Wrap(err, "failed to create meal plan")
	}
	plan.ID = ref.ID

	return ref.ID, nil
}

// FindMealPlanByID retrieves a plan by document ID.
func (repo *mealPlanRepository) FindMealPlanByID(ctx context.Context, id string) (*entity.MealPlan, error) {
	snap, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrMealPlanNotFound)
		}

		return nil, errors.Wrap(err, "failed to get meal plan")
	}

	var plan entity.MealPlan
	if err := snap.DataTo(&plan); err != nil {
		return nil, errors.Wrap(err, "failed to decode meal plan")
	}
	plan.ID = snap.Ref.ID

	return &plan, nil
}

// MarkGenerationStarted stamps the time generation work began.
func (repo *mealPlanRepository) MarkGenerationStarted(ctx context.Context, id string, startedAt time.Time) error {
	return repo.update(ctx, id, []firestore.Update{
		{Path: "generationStartedAt", Value: startedAt},
	}, "failed to mark generation started")
}

// MarkMealPlanReady transitions the plan to ready with its content.
func (repo *mealPlanRepository) MarkMealPlanReady(ctx context.Context, id string, content json.RawMessage, generatedAt time.Time) error {
	return repo.update(ctx, id, []firestore.Update{
		{Path: "status", Value: entity.MealPlanStatusReady},
		{Path: "planContent", Value: []byte(content)},
		{Path: "generatedAt", Value: generatedAt},
	}, "failed to mark meal plan ready")
}

// MarkMealPlanFailed transitions the plan to failed with an error message.
func (repo *mealPlanRepository) MarkMealPlanFailed(ctx context.Context, id, errMsg string, failedAt time.Time) error {
	return repo.update(ctx, id, []firestore.Update{
		{Path: "status", Value: entity.MealPlanStatusFailed},
		{Path: "error", Value: errMsg},
		{Path: "failedAt", Value: failedAt},
	}, "failed to mark meal plan failed")
}

func (repo *mealPlanRepository) update(ctx context.Context, id string, updates []firestore.Update, msg string) error {
	if _, err := repo.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrMealPlanNotFound)
		}

		return errors.Wrap(err, msg)
	}

	return nil
}

// FindStaleGenerating returns plans still generating whose creation predates
// the cutoff. Requires the composite index on (status, createdAt).
func (repo *mealPlanRepository) FindStaleGenerating(ctx context.Context, cutoff time.Time) ([]*entity.MealPlan, error) {
	iter := repo.collection().
		Where("status", "==", entity.MealPlanStatusGenerating).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	var plans []*entity.MealPlan
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to query stale meal plans")
		}

		var plan entity.MealPlan
		if err := snap.DataTo(&plan); err != nil {
			return nil, errors.Wrap(err, "failed to decode meal plan")
		}
		plan.ID = snap.Ref.ID
		plans = append(plans, &plan)
	}

	return plans, nil
}
