package handler

import (
	"net/http"

	"lnlfit/internal/delivery/http/response"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TemplateHandler holds dependencies for back-office template management.
type TemplateHandler struct {
	uc usecase.TemplateUsecase
}

// NewTemplateHandler is the constructor for TemplateHandler, injected by Fx.
func NewTemplateHandler(uc usecase.TemplateUsecase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// CreateTemplate creates a meal plan template.
func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var input *usecase.TemplateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid template input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	template, err := h.uc.CreateTemplate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, template, "Template created")
}

// UpdateTemplate updates an existing meal plan template.
func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	var input *usecase.TemplateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid template input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	template, err := h.uc.UpdateTemplate(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, template, "Template updated")
}

// ListTemplates returns all templates, newest first.
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	templates, err := h.uc.ListTemplates(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, templates, "")
}
