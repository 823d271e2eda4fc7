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

type affiliateService struct {
	affiliateRepo repository.AffiliateRepository
	logger        *slog.Logger
}

// NewAffiliateService creates the referral tracking and management service.
func NewAffiliateService(affiliateRepo repository.AffiliateRepository, logger *slog.Logger) usecase.AffiliateUsecase {
	return &affiliateService{
		affiliateRepo: affiliateRepo,
		logger:        logger,
	}
}

// TrackClick books one referral click against the active affiliate matching
// the normalized code. Unknown or disabled codes are dropped silently so the
// endpoint leaks nothing about which codes exist.
func (s *affiliateService) TrackClick(ctx context.Context, input *usecase.TrackClickInput) error {
	code := entity.NormalizeAffiliateCode(input.Code)
	if code == "" {
		return nil
	}

	affiliate, err := s.affiliateRepo.FindActiveAffiliateByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrAffiliateNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to look up affiliate")
	}

	click := &entity.AffiliateClick{
		AffiliateID:   affiliate.ID,
		AffiliateCode: code,
		UserAgent:     input.UserAgent,
		Referrer:      input.Referrer,
		Timestamp:     time.Now(),
	}
	if err := s.affiliateRepo.RecordClick(ctx, affiliate.ID, click); err != nil {
		return errors.Wrap(err, "failed to record affiliate click")
	}

	return nil
}

// CreateAffiliate onboards a new affiliate with a normalized code and an
// active status.
func (s *affiliateService) CreateAffiliate(ctx context.Context, input *usecase.CreateAffiliateInput) (*entity.Affiliate, error) {
	code := entity.NormalizeAffiliateCode(input.Code)
	if code == "" {
		return nil, errors.WithStack(domainerrors.ErrAffiliateInvalid.WithDetails("code must contain letters or digits"))
	}

	affiliate := &entity.Affiliate{
		Code:           code,
		Name:           input.Name,
		Email:          input.Email,
		CommissionRate: input.CommissionRate,
		Status:         entity.AffiliateStatusActive,
		CreatedAt:      time.Now(),
	}
	if err := affiliate.Validate(); err != nil {
		return nil, errors.WithStack(domainerrors.ErrAffiliateInvalid.WithDetails(err.Error()))
	}

	id, err := s.affiliateRepo.CreateAffiliate(ctx, affiliate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create affiliate")
	}
	affiliate.ID = id

	s.logger.Info("[Affiliate] Affiliate created",
		slog.String("affiliate_id", id),
		slog.String("code", code),
	)

	return affiliate, nil
}

func (s *affiliateService) ListAffiliates(ctx context.Context) ([]*entity.Affiliate, error) {
	affiliates, err := s.affiliateRepo.ListAffiliates(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list affiliates")
	}

	return affiliates, nil
}
