package handler

import (
	"net/http"
	"strconv"

	"lnlfit/internal/delivery/http/response"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultCustomerPageSize = 50

// AdminHandler holds dependencies for back-office authentication and
// customer views.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Login handles the back-office login request.
func (h *AdminHandler) Login(c echo.Context) error {
	var input *usecase.AdminLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// ListCustomers returns customers, newest first.
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	limit := defaultCustomerPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return response.BadRequest(c, "INVALID_LIMIT", "limit must be a positive integer")
		}
		limit = parsed
	}

	customers, err := h.uc.ListCustomers(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "")
}

// GetCustomer returns one customer by ID.
func (h *AdminHandler) GetCustomer(c echo.Context) error {
	customer, err := h.uc.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}
