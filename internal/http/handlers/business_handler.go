package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/http/dto"
	"github.com/promo-platform/backend/internal/middleware"
	"github.com/promo-platform/backend/internal/repositories"
	"github.com/promo-platform/backend/internal/services"
	"go.uber.org/zap"
)

type BusinessHandler struct {
	companyService *services.CompanyService
	promoService   *services.PromoService
	log            *zap.Logger
}

func NewBusinessHandler(companyService *services.CompanyService, promoService *services.PromoService, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{companyService: companyService, promoService: promoService, log: log}
}

func (h *BusinessHandler) SignUp(c *fiber.Ctx) error {
	var req dto.CompanySignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	token, companyID, err := h.companyService.SignUp(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.CompanySignUpResponse{Token: token, CompanyID: companyID.String()})
}

func (h *BusinessHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}

	token, err := h.companyService.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{Token: token})
}

func (h *BusinessHandler) CreatePromo(c *fiber.Ctx) error {
	var req dto.PromoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}

	promo, err := req.ToModel()
	if err != nil {
		return err
	}

	companyID := middleware.GetPrincipalID(c)
	id, err := h.promoService.Create(c.Context(), companyID, promo)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PromoCreateResponse{ID: id.String()})
}

// ListPromos returns one page plus the total match count in X-Total-Count.
// country accepts a comma-separated list of alpha-2 codes.
func (h *BusinessHandler) ListPromos(c *fiber.Ctx) error {
	filter := repositories.PromoFilter{Limit: 10}

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}
	switch sortBy := c.Query("sort_by"); sortBy {
	case "", "active_from", "active_until":
		filter.SortBy = sortBy
	default:
		return apperr.Validation("sort_by must be active_from or active_until")
	}
	if v := c.Query("country"); v != "" {
		for _, code := range strings.Split(v, ",") {
			filter.Countries = append(filter.Countries, strings.ToUpper(strings.TrimSpace(code)))
		}
	}

	companyID := middleware.GetPrincipalID(c)
	total, promos, err := h.promoService.List(c.Context(), companyID, filter)
	if err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.Itoa(total))
	return c.JSON(dto.NewPromoResponses(promos))
}

func (h *BusinessHandler) GetPromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	companyID := middleware.GetPrincipalID(c)
	promo, err := h.promoService.GetByID(c.Context(), companyID, promoID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPromoResponse(promo))
}

func (h *BusinessHandler) PatchPromo(c *fiber.Ctx) error {
	promoID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.NotFound("promo not found")
	}

	var req dto.PromoPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}

	companyID := middleware.GetPrincipalID(c)
	promo, err := h.promoService.Patch(c.Context(), companyID, promoID, patch)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPromoResponse(promo))
}
