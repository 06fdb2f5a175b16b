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

type UserService struct {
	userRepo  *repositories.UserRepo
	whitelist *auth.Whitelist
	hasher    *auth.Hasher
	cfg       *config.Config
	log       *zap.Logger
}

func NewUserService(
	userRepo *repositories.UserRepo,
	whitelist *auth.Whitelist,
	hasher *auth.Hasher,
	cfg *config.Config,
	log *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		whitelist: whitelist,
		hasher:    hasher,
		cfg:       cfg,
		log:       log,
	}
}

func (s *UserService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	jti, token, err := auth.GenerateToken(s.cfg.JWTSecret, userID, s.cfg.JWTExpiration, false)
	if err != nil {
		s.log.Error("failed to sign token", zap.Error(err))
		return "", apperr.Validation("error during creating token")
	}
	if err := s.whitelist.Add(ctx, auth.EntityUser, userID.String(), jti); err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) SignUp(ctx context.Context, u *models.User, password string) (string, error) {
	_, err := s.userRepo.GetByEmail(ctx, u.Email)
	if err == nil {
		return "", apperr.Conflict("email is already registered")
	}
	if err != pgx.ErrNoRows {
		return "", err
	}

	hashed, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return "", err
	}
	u.Password = hashed

	if err := s.userRepo.Create(ctx, u); err != nil {
		if repositories.IsUniqueViolation(err) {
			return "", apperr.Conflict("email is already registered")
		}
		return "", err
	}
	return s.issueToken(ctx, u.ID)
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == pgx.ErrNoRows {
		return "", apperr.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return "", err
	}

	ok, err := s.hasher.Verify(ctx, password, user.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apperr.Unauthenticated("invalid email or password")
	}

	if err := s.whitelist.RevokeAll(ctx, auth.EntityUser, user.ID.String()); err != nil {
		return "", err
	}
	return s.issueToken(ctx, user.ID)
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == pgx.ErrNoRows {
		return nil, apperr.Unauthenticated("user is not authorized")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) PatchProfile(ctx context.Context, userID uuid.UUID, patch repositories.ProfilePatch) (*models.User, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hashed, err := s.hasher.Hash(ctx, *patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, patch); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
