package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/models"
	"github.com/promo-platform/backend/internal/repositories"
	"go.uber.org/zap"
)

type PromoService struct {
	promoRepo   *repositories.PromoRepo
	companyRepo *repositories.CompanyRepo
	log         *zap.Logger
}

func NewPromoService(
	promoRepo *repositories.PromoRepo,
	companyRepo *repositories.CompanyRepo,
	log *zap.Logger,
) *PromoService {
	return &PromoService{
		promoRepo:   promoRepo,
		companyRepo: companyRepo,
		log:         log,
	}
}

// requireCompany rejects tokens whose principal row no longer exists.
func (s *PromoService) requireCompany(ctx context.Context, companyID uuid.UUID) error {
	exists, err := s.companyRepo.Exists(ctx, companyID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Unauthenticated("user is not authorized")
	}
	return nil
}

func (s *PromoService) Create(ctx context.Context, companyID uuid.UUID, promo *models.Promo) (uuid.UUID, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return uuid.Nil, err
	}

	promo.CompanyID = companyID
	if err := promo.Validate(); err != nil {
		return uuid.Nil, err
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return uuid.Nil, err
	}
	return promo.ID, nil
}

func (s *PromoService) List(ctx context.Context, companyID uuid.UUID, f repositories.PromoFilter) (int, []*models.Promo, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return 0, nil, err
	}
	return s.promoRepo.ListForCompany(ctx, companyID, f)
}

// GetByID distinguishes a missing promo (404) from one owned by another
// company (403); the ownership check runs on every owner-scoped read.
func (s *PromoService) GetByID(ctx context.Context, companyID, promoID uuid.UUID) (*models.Promo, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}

	promo, err := s.promoRepo.GetByID(ctx, promoID)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("promo not found")
	}
	if err != nil {
		return nil, err
	}
	if promo.CompanyID != companyID {
		return nil, apperr.Forbidden("promo belongs to another company")
	}
	return promo, nil
}

// Patch applies only explicitly-set fields and re-validates the window and
// age invariants against the merged state before persisting.
func (s *PromoService) Patch(ctx context.Context, companyID, promoID uuid.UUID, patch models.PromoPatch) (*models.Promo, error) {
	promo, err := s.GetByID(ctx, companyID, promoID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(promo); err != nil {
		return nil, err
	}

	if err := s.promoRepo.Update(ctx, promo, patch.CategoriesReplaced()); err != nil {
		return nil, err
	}
	return s.promoRepo.GetByID(ctx, promoID)
}
