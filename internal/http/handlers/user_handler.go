package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/http/dto"
	"github.com/promo-platform/backend/internal/middleware"
	"github.com/promo-platform/backend/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService       *services.UserService
	engagementService *services.EngagementService
	log               *zap.Logger
}

func NewUserHandler(userService *services.UserService, engagementService *services.EngagementService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, engagementService: engagementService, log: log}
}

func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req dto.UserSignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := req.ToModel()
	if err != nil {
		return err
	}

	token, err := h.userService.SignUp(c.Context(), user, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	token, err := h.userService.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.Context(), middleware.GetPrincipalID(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) PatchProfile(c *fiber.Ctx) error {
	var req dto.UserPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}

	user, err := h.userService.PatchProfile(c.Context(), middleware.GetPrincipalID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Feed lists active promos matching the caller's target profile.
func (h *UserHandler) Feed(c *fiber.Ctx) error {
	query := services.FeedQuery{Limit: 10}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			query.Offset = n
		}
	}
	if v := c.Query("category"); v != "" {
		query.Category = &v
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.Validation("active must be a boolean")
		}
		query.Active = &active
	}

	total, promos, err := h.engagementService.Feed(c.Context(), middleware.GetPrincipalID(c), query)
	if err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.Itoa(total))
	return c.JSON(dto.NewFeedResponses(promos))
}

func (h *UserHandler) GetPromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	view, err := h.engagementService.GetPromoForUser(c.Context(), middleware.GetPrincipalID(c), promoID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *UserHandler) ActivatePromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	code, err := h.engagementService.Activate(c.Context(), middleware.GetPrincipalID(c), promoID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ActivationResponse{Promo: code})
}

func (h *UserHandler) LikePromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	if err := h.engagementService.Like(c.Context(), middleware.GetPrincipalID(c), promoID); err != nil {
		return err
	}
	return c.JSON(dto.StatusOK)
}

func (h *UserHandler) UnlikePromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	if err := h.engagementService.Unlike(c.Context(), middleware.GetPrincipalID(c), promoID); err != nil {
		return err
	}
	return c.JSON(dto.StatusOK)
}

func (h *UserHandler) AddComment(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	comment, err := h.engagementService.AddComment(c.Context(), middleware.GetPrincipalID(c), promoID, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *UserHandler) ListComments(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	limit, offset := 10, 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	comments, err := h.engagementService.ListComments(c.Context(), middleware.GetPrincipalID(c), promoID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(comments)
}

func (h *UserHandler) commentScope(c *fiber.Ctx) (promoID, commentID uuid.UUID, err error) {
	promoID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.NotFound("no such promo or comment")
	}
	commentID, err = uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperr.NotFound("no such promo or comment")
	}
	return promoID, commentID, nil
}

func (h *UserHandler) GetComment(c *fiber.Ctx) error {
	promoID, commentID, err := h.commentScope(c)
	if err != nil {
		return err
	}

	comment, err := h.engagementService.GetComment(c.Context(), middleware.GetPrincipalID(c), promoID, commentID)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *UserHandler) ReplaceComment(c *fiber.Ctx) error {
	promoID, commentID, err := h.commentScope(c)
	if err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	comment, err := h.engagementService.ReplaceCommentText(c.Context(), middleware.GetPrincipalID(c), promoID, commentID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *UserHandler) DeleteComment(c *fiber.Ctx) error {
	promoID, commentID, err := h.commentScope(c)
	if err != nil {
		return err
	}

	if err := h.engagementService.DeleteComment(c.Context(), middleware.GetPrincipalID(c), promoID, commentID); err != nil {
		return err
	}
	return c.JSON(dto.StatusOK)
}
