package models

import (
	"github.com/google/uuid"
)

// UserPromo is the per-(user, promo) engagement row. Created lazily on the
// first like or activation, flipped afterwards, never deleted.
type UserPromo struct {
	UserID    uuid.UUID `json:"user_id"`
	PromoID   uuid.UUID `json:"promo_id"`
	Activated bool      `json:"activated"`
	Liked     bool      `json:"liked"`
}

// CountryActivation is the global per-country redemption counter.
type CountryActivation struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Activation int       `json:"activation"`
}

// PromoUserView is a promo as a user sees it: engagement flags and the live
// comment count joined in.
type PromoUserView struct {
	PromoID           uuid.UUID `json:"promo_id"`
	CompanyID         uuid.UUID `json:"company_id"`
	CompanyName       string    `json:"company_name"`
	Description       string    `json:"description"`
	ImageURL          *string   `json:"image_url,omitempty"`
	Active            bool      `json:"active"`
	IsActivatedByUser bool      `json:"is_activated_by_user"`
	LikeCount         int       `json:"like_count"`
	IsLikedByUser     bool      `json:"is_liked_by_user"`
	CommentCount      int       `json:"comment_count"`
}
