package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/auth"
	"github.com/promo-platform/backend/internal/config"
	"github.com/promo-platform/backend/internal/models"
	"github.com/promo-platform/backend/internal/repositories"
	"go.uber.org/zap"
)

type CompanyService struct {
	companyRepo *repositories.CompanyRepo
	whitelist   *auth.Whitelist
	hasher      *auth.Hasher
	cfg         *config.Config
	log         *zap.Logger
}

func NewCompanyService(
	companyRepo *repositories.CompanyRepo,
	whitelist *auth.Whitelist,
	hasher *auth.Hasher,
	cfg *config.Config,
	log *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		whitelist:   whitelist,
		hasher:      hasher,
		cfg:         cfg,
		log:         log,
	}
}

// issueToken creates a fresh access token and whitelists its jti.
func (s *CompanyService) issueToken(ctx context.Context, companyID uuid.UUID) (string, error) {
	jti, token, err := auth.GenerateToken(s.cfg.JWTSecret, companyID, s.cfg.JWTExpiration, false)
	if err != nil {
		s.log.Error("failed to sign token", zap.Error(err))
		return "", apperr.Validation("error during creating token")
	}
	if err := s.whitelist.Add(ctx, auth.EntityCompany, companyID.String(), jti); err != nil {
		return "", err
	}
	return token, nil
}

func (s *CompanyService) SignUp(ctx context.Context, name, email, password string) (string, uuid.UUID, error) {
	_, err := s.companyRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", uuid.Nil, apperr.Conflict("email is already registered")
	}
	if err != pgx.ErrNoRows {
		return "", uuid.Nil, err
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return "", uuid.Nil, err
	}

	company := &models.Company{Name: name, Email: email, Password: hashed}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		// A concurrent sign-up can win the race between the email check
		// and the insert; the unique index is the real arbiter.
		if repositories.IsUniqueViolation(err) {
			return "", uuid.Nil, apperr.Conflict("email is already registered")
		}
		return "", uuid.Nil, err
	}

	token, err := s.issueToken(ctx, company.ID)
	if err != nil {
		return "", uuid.Nil, err
	}
	return token, company.ID, nil
}

// SignIn revokes every previously issued token before whitelisting the new
// one, so a login leaves exactly one live session.
func (s *CompanyService) SignIn(ctx context.Context, email, password string) (string, error) {
	company, err := s.companyRepo.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return "", apperr.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return "", err
	}

	ok, err := s.hasher.Verify(ctx, password, company.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Unauthenticated("invalid email or password")
	}

	if err := s.whitelist.RevokeAll(ctx, auth.EntityCompany, company.ID.String()); err != nil {
		return "", err
	}
	return s.issueToken(ctx, company.ID)
}
