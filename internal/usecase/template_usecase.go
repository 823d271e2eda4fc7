package usecase

import (
	"context"

	"lnlfit/internal/domain/entity"
)

// TemplateInput is the back-office form for creating or updating a template.
type TemplateInput struct {
	Name         string              `json:"name" validate:"required"`
	CustomerType string              `json:"customerType" validate:"required"`
	CalorieRange entity.CalorieRange `json:"calorieRange"`
	MacroSplit   entity.MacroSplit   `json:"macroSplit"`
	MealsPerDay  int                 `json:"mealsPerDay" validate:"gte=1"`
	Guidelines   string              `json:"guidelines"`
	SampleMeals  string              `json:"sampleMeals"`
	IsActive     bool                `json:"isActive"`
}

// TemplateUsecase covers back-office template management. Entity-level
// invariants (macro split sums to 100 ± 1, valid calorie range) are enforced
// on create and update.
type TemplateUsecase interface {
	CreateTemplate(ctx context.Context, input *TemplateInput) (*entity.MealPlanTemplate, error)
	UpdateTemplate(ctx context.Context, id string, input *TemplateInput) (*entity.MealPlanTemplate, error)
	ListTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error)
}
