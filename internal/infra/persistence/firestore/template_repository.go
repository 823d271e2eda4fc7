package firestore

import (
	"context"

	"lnlfit/internal/domain/constants"
	"lnlfit/internal/domain/entity"
	"lnlfit/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// templateRepository implements repository.TemplateRepository on Firestore.
type templateRepository struct {
	client *firestore.Client
}

// NewTemplateRepository is the constructor for templateRepository.
func NewTemplateRepository(client *firestore.Client) repository.TemplateRepository {
	return &templateRepository{client: client}
}

func (repo *templateRepository) collection() *firestore.CollectionRef {
	return repo.client.Collection(constants.CollectionMealPlanTemplates)
}

// CreateTemplate persists a new template with a generated ID.
func (repo *templateRepository) CreateTemplate(ctx context.Context, template *entity.MealPlanTemplate) (string, error) {
	ref := repo.collection().NewDoc()
	if _, err := ref.Create(ctx, template); err != nil {
		return "", errors.Wrap(err, "failed to create template")
	}
	template.ID = ref.ID

	return ref.ID, nil
}

// UpdateTemplate overwrites an existing template document.
func (repo *templateRepository) UpdateTemplate(ctx context.Context, template *entity.MealPlanTemplate) error {
	if template.ID == "" {
		return errors.WithStack(repository.ErrTemplateNotFound)
	}

	if _, err := repo.collection().Doc(template.ID).Set(ctx, template); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.WithStack(repository.ErrTemplateNotFound)
		}

		return errors.Wrap(err, "failed to update template")
	}

	return nil
}

// FindTemplateByID retrieves a template by document ID.
func (repo *templateRepository) FindTemplateByID(ctx context.Context, id string) (*entity.MealPlanTemplate, error) {
	snap, err := repo.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.WithStack(repository.ErrTemplateNotFound)
		}

		return nil, errors.Wrap(err, "failed to get template")
	}

	var template entity.MealPlanTemplate
	if err := snap.DataTo(&template); err != nil {
		return nil, errors.Wrap(err, "failed to decode template")
	}
	template.ID = snap.Ref.ID

	return &template, nil
}

// ListActiveTemplates returns active templates ordered by document ID so the
// selector's tie-breaking stays deterministic across calls.
func (repo *templateRepository) ListActiveTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error) {
	iter := repo.collection().
		Where("isActive", "==", true).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)

	return repo.drain(iter, "failed to list active templates")
}

// ListTemplates returns all templates ordered by creation time descending.
func (repo *templateRepository) ListTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error) {
	iter := repo.collection().OrderBy("createdAt", firestore.Desc).Documents(ctx)

	return repo.drain(iter, "failed to list templates")
}

func (repo *templateRepository) drain(iter *firestore.DocumentIterator, msg string) ([]*entity.MealPlanTemplate, error) {
	defer iter.Stop()

	var templates []*entity.MealPlanTemplate
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, msg)
		}

		var template entity.MealPlanTemplate
		if err := snap.DataTo(&template); err != nil {
			return nil, errors.Wrap(err, "failed to decode template")
		}
		template.ID = snap.Ref.ID
		templates = append(templates, &template)
	}

	return templates, nil
}
