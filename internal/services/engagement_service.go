package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/events"
	"github.com/promo-platform/backend/internal/models"
	"github.com/promo-platform/backend/internal/repositories"
	"go.uber.org/zap"
)

type EngagementService struct {
	engagementRepo *repositories.EngagementRepo
	commentRepo    *repositories.CommentRepo
	promoRepo      *repositories.PromoRepo
	userRepo       *repositories.UserRepo
	publisher      events.Publisher
	log            *zap.Logger
}

func NewEngagementService(
	engagementRepo *repositories.EngagementRepo,
	commentRepo *repositories.CommentRepo,
	promoRepo *repositories.PromoRepo,
	userRepo *repositories.UserRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		commentRepo:    commentRepo,
		promoRepo:      promoRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		log:            log,
	}
}

// requireUser rejects tokens whose principal row no longer exists and
// returns the user for callers that need the target profile.
func (s *EngagementService) requireUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == pgx.ErrNoRows {
		return nil, apperr.Unauthenticated("user is not authorized")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// publish sends an engagement event; delivery is best-effort and never
// fails the request.
func (s *EngagementService) publish(ctx context.Context, eventType string, promoID uuid.UUID, extra map[string]any) {
	payload := map[string]any{"promo_id": promoID.String()}
	for k, v := range extra {
		payload[k] = v
	}
	if err := s.publisher.Publish(ctx, events.StreamEngagement, events.Event{
		Type:    eventType,
		Payload: payload,
	}); err != nil {
		s.log.Warn("failed to publish engagement event", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *EngagementService) Like(ctx context.Context, userID, promoID uuid.UUID) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	err := s.engagementRepo.Like(ctx, userID, promoID)
	if err == pgx.ErrNoRows {
		return apperr.NotFound("promo not found")
	}
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventPromoLiked, promoID, nil)
	return nil
}

func (s *EngagementService) Unlike(ctx context.Context, userID, promoID uuid.UUID) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	err := s.engagementRepo.Unlike(ctx, userID, promoID)
	if err == pgx.ErrNoRows {
		return apperr.NotFound("promo not found")
	}
	if err != nil {
		return err
	}

	s.publish(ctx, events.EventPromoUnliked, promoID, nil)
	return nil
}

// Activate redeems the promo for the user and returns the code.
func (s *EngagementService) Activate(ctx context.Context, userID, promoID uuid.UUID) (string, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return "", err
	}

	code, err := s.engagementRepo.Activate(ctx, userID, promoID, user.Other.Country)
	switch err {
	case nil:
	case pgx.ErrNoRows:
		return "", apperr.NotFound("promo not found")
	case repositories.ErrInactive:
		return "", apperr.Forbidden("promo is not active")
	case repositories.ErrExhausted:
		return "", apperr.Conflict("promo activation limit reached")
	case repositories.ErrAlreadyActivated:
		return "", apperr.Conflict("promo already activated")
	default:
		return "", err
	}

	s.publish(ctx, events.EventPromoActivated, promoID, nil)
	return code, nil
}

func (s *EngagementService) GetPromoForUser(ctx context.Context, userID, promoID uuid.UUID) (*models.PromoUserView, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	view, err := s.promoRepo.GetUserView(ctx, userID, promoID)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("promo not found")
	}
	if err != nil {
		return nil, err
	}
	return view, nil
}

// FeedQuery is the user-facing listing filter; targeting comes from the
// user's own profile.
type FeedQuery struct {
	Category *string
	Active   *bool
	Limit    int
	Offset   int
}

func (s *EngagementService) Feed(ctx context.Context, userID uuid.UUID, q FeedQuery) (int, []*models.Promo, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return 0, nil, err
	}

	return s.promoRepo.ListFeed(ctx, repositories.FeedFilter{
		Age:      user.Other.Age,
		Country:  user.Other.Country,
		Category: q.Category,
		Active:   q.Active,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
}

func (s *EngagementService) AddComment(ctx context.Context, userID, promoID uuid.UUID, text string) (*models.Comment, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.commentRepo.PromoExists(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("promo not found")
	}

	comment, err := s.commentRepo.Create(ctx, userID, promoID, text)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventCommentAdded, promoID, map[string]any{"comment_id": comment.ID.String()})
	return comment, nil
}

func (s *EngagementService) ListComments(ctx context.Context, userID, promoID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	exists, err := s.commentRepo.PromoExists(ctx, promoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("promo not found")
	}

	return s.commentRepo.ListForPromo(ctx, promoID, limit, offset)
}

func (s *EngagementService) GetComment(ctx context.Context, userID, promoID, commentID uuid.UUID) (*models.Comment, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Get(ctx, promoID, commentID)
	if err == pgx.ErrNoRows {
		return nil, apperr.NotFound("no such promo or comment")
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ReplaceCommentText replaces the whole text. Only the author may edit.
func (s *EngagementService) ReplaceCommentText(ctx context.Context, userID, promoID, commentID uuid.UUID, text string) (*models.Comment, error) {
	comment, err := s.GetComment(ctx, userID, promoID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, apperr.Forbidden("comment belongs to another user")
	}

	return s.commentRepo.UpdateText(ctx, promoID, commentID, text)
}

// DeleteComment removes the comment. Only the author may delete.
func (s *EngagementService) DeleteComment(ctx context.Context, userID, promoID, commentID uuid.UUID) error {
	comment, err := s.GetComment(ctx, userID, promoID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return apperr.Forbidden("comment belongs to another user")
	}

	return s.commentRepo.Delete(ctx, promoID, commentID)
}
