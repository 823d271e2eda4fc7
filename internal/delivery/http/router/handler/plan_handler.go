package handler

import (
	"net/http"

	"lnlfit/internal/delivery/http/response"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlanHandler holds dependencies for meal plan status polling and the
// synchronous generation endpoint.
type PlanHandler struct {
	status     usecase.PlanStatusUsecase
	generation usecase.GenerationUsecase
}

// NewPlanHandler is the constructor for PlanHandler, injected by Fx.
func NewPlanHandler(status usecase.PlanStatusUsecase, generation usecase.GenerationUsecase) *PlanHandler {
	return &PlanHandler{
		status:     status,
		generation: generation,
	}
}

// Status reports generation progress for the plan tied to a payment session.
// An unmatched session ID yields status "unknown", not an error, so waiting
// clients keep polling.
func (h *PlanHandler) Status(c echo.Context) error {
	output, err := h.status.Status(c.Request().Context(), c.QueryParam("session_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Generate drives one plan through generation synchronously. The worker's
// push endpoint is the normal path; this exists for manual re-runs.
func (h *PlanHandler) Generate(c echo.Context) error {
	var input *usecase.GeneratePlanInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid generation input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.generation.GeneratePlan(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"success": true}, "Generation completed")
}
