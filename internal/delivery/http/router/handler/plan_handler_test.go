package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lnlfit/internal/delivery/http/validator"
	domainerrors "lnlfit/internal/domain/errors"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlanStatus struct {
	output *usecase.PlanStatusOutput
	err    error
	polled []string
}

func (f *fakePlanStatus) Status(_ context.Context, paymentSessionID string) (*usecase.PlanStatusOutput, error) {
	f.polled = append(f.polled, paymentSessionID)

	return f.output, f.err
}

type fakeGeneration struct {
	inputs []*usecase.GeneratePlanInput
	err    error
}

func (f *fakeGeneration) GeneratePlan(_ context.Context, input *usecase.GeneratePlanInput) error {
	f.inputs = append(f.inputs, input)

	return f.err
}

func (f *fakeGeneration) FailStale(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func newPlanEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func TestPlanHandler_StatusReportsUnknownSession(t *testing.T) {
	status := &fakePlanStatus{output: &usecase.PlanStatusOutput{Status: usecase.PlanStatusUnknown}}
	h := NewPlanHandler(status, &fakeGeneration{})

	e := newPlanEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/meal-plan/status?session_id=cs_missing", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Status(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cs_missing"}, status.polled)
	assert.Contains(t, rec.Body.String(), `"status":"unknown"`)
}

func TestPlanHandler_StatusMissingSessionIDSurfacesAppError(t *testing.T) {
	status := &fakePlanStatus{err: errors.WithStack(domainerrors.ErrMissingSessionID)}
	h := NewPlanHandler(status, &fakeGeneration{})

	e := newPlanEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/meal-plan/status", nil)
	rec := httptest.NewRecorder()

	err := h.Status(e.NewContext(req, rec))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestPlanHandler_GenerateDrivesPlan(t *testing.T) {
	generation := &fakeGeneration{}
	h := NewPlanHandler(&fakePlanStatus{}, generation)

	body, err := json.Marshal(map[string]string{
		"mealPlanId": "plan-1",
		"customerId": "cust-1",
	})
	require.NoError(t, err)

	e := newPlanEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/meal-plan/generate", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Generate(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, generation.inputs, 1)
	assert.Equal(t, "plan-1", generation.inputs[0].MealPlanID)
	assert.Equal(t, "cust-1", generation.inputs[0].CustomerID)
}

func TestPlanHandler_GenerateRejectsMissingIDs(t *testing.T) {
	generation := &fakeGeneration{}
	h := NewPlanHandler(&fakePlanStatus{}, generation)

	e := newPlanEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/meal-plan/generate", strings.NewReader(`{"mealPlanId":"plan-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Generate(e.NewContext(req, rec))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Empty(t, generation.inputs)
}
