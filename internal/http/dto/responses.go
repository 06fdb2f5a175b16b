package dto

import (
	"github.com/promo-platform/backend/internal/models"
)

// ErrorResponse is the uniform envelope for every handled failure.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}

type StatusResponse struct {
	Status string `json:"status"`
}

var StatusOK = StatusResponse{Status: "ok"}

type TokenResponse struct {
	Token string `json:"token"`
}

type CompanySignUpResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"company_id"`
}

type PromoCreateResponse struct {
	ID string `json:"id"`
}

type ActivationResponse struct {
	Promo string `json:"promo"`
}

// PromoResponse nests targeting and renders the activity window as plain
// dates, matching the wire shape companies consume.
type PromoResponse struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Description string   `json:"description"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Target      *Target  `json:"target,omitempty"`
	MaxCount    int      `json:"max_count"`
	ActiveFrom  *string  `json:"active_from,omitempty"`
	ActiveUntil *string  `json:"active_until,omitempty"`
	Mode        string   `json:"mode"`
	Active      bool     `json:"active"`
	LikeCount   int      `json:"like_count"`
	UsedCount   int      `json:"used_count"`
	PromoCommon *string  `json:"promo_common,omitempty"`
	PromoUnique []string `json:"promo_unique,omitempty"`
}

func NewPromoResponse(p *models.Promo) PromoResponse {
	resp := PromoResponse{
		ID:          p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		MaxCount:    p.MaxCount,
		ActiveFrom:  formatDate(p.ActiveFrom),
		ActiveUntil: formatDate(p.ActiveUntil),
		Mode:        p.Mode,
		Active:      p.Active,
		LikeCount:   p.LikeCount,
		UsedCount:   p.UsedCount,
		PromoCommon: p.PromoCommon,
		PromoUnique: p.PromoUnique,
	}
	if p.AgeFrom != nil || p.AgeUntil != nil || p.Country != nil || len(p.Categories) > 0 {
		resp.Target = &Target{
			AgeFrom:    p.AgeFrom,
			AgeUntil:   p.AgeUntil,
			Country:    p.Country,
			Categories: p.Categories,
		}
	}
	return resp
}

func NewPromoResponses(promos []*models.Promo) []PromoResponse {
	out := make([]PromoResponse, 0, len(promos))
	for _, p := range promos {
		out = append(out, NewPromoResponse(p))
	}
	return out
}

// FeedPromoResponse is a promo as listed to users. Redemption codes never
// appear here; a code is only revealed through activation.
type FeedPromoResponse struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Description string   `json:"description"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	ActiveFrom  *string  `json:"active_from,omitempty"`
	ActiveUntil *string  `json:"active_until,omitempty"`
	Active      bool     `json:"active"`
	LikeCount   int      `json:"like_count"`
}

func NewFeedResponses(promos []*models.Promo) []FeedPromoResponse {
	out := make([]FeedPromoResponse, 0, len(promos))
	for _, p := range promos {
		out = append(out, FeedPromoResponse{
			ID:          p.ID.String(),
			CompanyID:   p.CompanyID.String(),
			Description: p.Description,
			ImageURL:    p.ImageURL,
			Categories:  p.Categories,
			ActiveFrom:  formatDate(p.ActiveFrom),
			ActiveUntil: formatDate(p.ActiveUntil),
			Active:      p.Active,
			LikeCount:   p.LikeCount,
		})
	}
	return out
}
