package impl

import (
	"context"
	"log/slog"
	"time"

	"lnlfit/internal/domain/entity"
	domainerrors "lnlfit/internal/domain/errors"
	"lnlfit/internal/domain/repository"
	"lnlfit/internal/usecase"

	"github.com/pkg/errors"
)

type templateService struct {
	templateRepo repository.TemplateRepository
	logger       *slog.Logger
}

// NewTemplateService creates the back-office template management service.
func NewTemplateService(templateRepo repository.TemplateRepository, logger *slog.Logger) usecase.TemplateUsecase {
	return &templateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, input *usecase.TemplateInput) (*entity.MealPlanTemplate, error) {
	now := time.Now()
	template := templateFromInput(input)
	template.CreatedAt = now
	template.UpdatedAt = now

	if err := template.Validate(); err != nil {
		return nil, errors.WithStack(domainerrors.ErrTemplateInvalid.WithDetails(err.Error()))
	}

	id, err := s.templateRepo.CreateTemplate(ctx, template)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create template")
	}
	template.ID = id

	s.logger.Info("[Template] Template created",
		slog.String("template_id", id),
		slog.String("name", template.Name),
	)

	return template, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, id string, input *usecase.TemplateInput) (*entity.MealPlanTemplate, error) {
	existing, err := s.templateRepo.FindTemplateByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return nil, errors.WithStack(domainerrors.ErrTemplateNotFound)
		}

		return nil, errors.Wrap(err, "failed to load template")
	}

	template := templateFromInput(input)
	template.ID = existing.ID
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()

	if err := template.Validate(); err != nil {
		return nil, errors.WithStack(domainerrors.ErrTemplateInvalid.WithDetails(err.Error()))
	}

	if err := s.templateRepo.UpdateTemplate(ctx, template); err != nil {
		return nil, errors.Wrap(err, "failed to update template")
	}

	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context) ([]*entity.MealPlanTemplate, error) {
	templates, err := s.templateRepo.ListTemplates(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list templates")
	}

	return templates, nil
}

func templateFromInput(input *usecase.TemplateInput) *entity.MealPlanTemplate {
	return &entity.MealPlanTemplate{
		Name:         input.Name,
		CustomerType: input.CustomerType,
		CalorieRange: input.CalorieRange,
		MacroSplit:   input.MacroSplit,
		MealsPerDay:  input.MealsPerDay,
		Guidelines:   input.Guidelines,
		SampleMeals:  input.SampleMeals,
		IsActive:     input.IsActive,
	}
}
