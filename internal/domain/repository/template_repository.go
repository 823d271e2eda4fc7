package repository

import (
	"context"

	"lnlfit/internal/domain/entity"
	"lnlfit/internal/errors"
)

// ErrTemplateNotFound is returned when a meal plan template is not found.
var ErrTemplateNotFound = errors.New("meal plan template not found")

// TemplateRepository defines document-store operations over the
// mealPlanTemplates collection. Templates are authored by the back office and
// read-only to the fulfillment pipeline.
type TemplateRepository interface {
	// CreateTemplate persists a new template and returns its generated document ID.
	CreateTemplate(ctx context.Context, template *entity.MealPlanTemplate) (string, error)

	// UpdateTemplate overwrites an existing template.
	UpdateTemplate(ctx context.Context, template *entity.MealPlanTemplate) error

	// FindTemplateByID retrieves a template by document ID.
	FindTemplateByID(ctx context.Context, id string) (*entity.MealPlanTemplate, error)

	// ListActiveTemplates returns active templates ordered by document ID
	// ascending. The fixed ordering keeps template selection deterministic.
	ListActiveTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error)

	// ListTemplates returns all templates ordered by creation time descending.
	ListTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error)
}
