package handler

import (
	"net/http"

	"lnlfit/internal/delivery/http/response"
	"lnlfit/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AffiliateHandler holds dependencies for referral tracking and back-office
// affiliate management.
type AffiliateHandler struct {
	uc usecase.AffiliateUsecase
}

// NewAffiliateHandler is the constructor for AffiliateHandler, injected by Fx.
func NewAffiliateHandler(uc usecase.AffiliateUsecase) *AffiliateHandler {
	return &AffiliateHandler{uc: uc}
}

// TrackClick records one referral click. The response never reveals whether
// the code matched an affiliate.
func (h *AffiliateHandler) TrackClick(c echo.Context) error {
	var input *usecase.TrackClickInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tracking input")
	}
	input.UserAgent = c.Request().UserAgent()
	if input.Referrer == "" {
		input.Referrer = c.Request().Referer()
	}

	if err := h.uc.TrackClick(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"tracked": true}, "")
}

// CreateAffiliate onboards a new affiliate (back office).
func (h *AffiliateHandler) CreateAffiliate(c echo.Context) error {
	var input *usecase.CreateAffiliateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid affiliate input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	affiliate, err := h.uc.CreateAffiliate(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, affiliate, "Affiliate created")
}

// ListAffiliates returns all affiliates, newest first (back office).
func (h *AffiliateHandler) ListAffiliates(c echo.Context) error {
	affiliates, err := h.uc.ListAffiliates(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, affiliates, "")
}
