package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/promo-platform/backend/internal/apperr"
)

const (
	PromoModeCommon = "COMMON"
	PromoModeUnique = "UNIQUE"

	MaxUniqueCodes = 5000
	MaxActivations = 100000000
)

// Promo is a promotion owned by a company. Exactly one of PromoCommon /
// PromoUnique is populated, determined by Mode.
type Promo struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"image_url,omitempty"`
	AgeFrom     *int       `json:"-"`
	AgeUntil    *int       `json:"-"`
	Country     *string    `json:"-"`
	ActiveFrom  *time.Time `json:"active_from,omitempty"`
	ActiveUntil *time.Time `json:"active_until,omitempty"`
	MaxCount    int        `json:"max_count"`
	Mode        string     `json:"mode"`
	Active      bool       `json:"active"`
	LikeCount   int        `json:"like_count"`
	UsedCount   int        `json:"used_count"`
	PromoCommon *string    `json:"promo_common,omitempty"`
	CreatedAt   time.Time  `json:"-"`

	Categories  []string `json:"-"`
	PromoUnique []string `json:"promo_unique,omitempty"`
}

type UniqueCode struct {
	ID       uuid.UUID
	PromoID  uuid.UUID
	Code     string
	IsActive bool
}

// ValidateCodes enforces the mode/code coupling: COMMON carries exactly the
// shared code, UNIQUE carries only the pool (1..5000 entries) and may not
// have max_count of 1.
func ValidateCodes(mode string, promoCommon *string, promoUnique []string, maxCount int) error {
	switch mode {
	case PromoModeCommon:
		if promoCommon == nil || *promoCommon == "" {
			return apperr.Validation("promo_common must be provided for COMMON mode")
		}
		if len(promoUnique) > 0 {
			return apperr.Validation("promo_unique is not allowed for COMMON mode")
		}
	case PromoModeUnique:
		if maxCount == 1 {
			return apperr.Validation("max_count of 1 is not allowed for UNIQUE mode")
		}
		if len(promoUnique) == 0 {
			return apperr.Validation("promo_unique must be provided for UNIQUE mode")
		}
		if len(promoUnique) > MaxUniqueCodes {
			return apperr.Validation("promo_unique may hold at most %d codes", MaxUniqueCodes)
		}
		if promoCommon != nil && *promoCommon != "" {
			return apperr.Validation("promo_common is not allowed for UNIQUE mode")
		}
	default:
		return apperr.Validation("mode must be COMMON or UNIQUE")
	}
	return nil
}

// ValidateWindow rejects activity windows where active_from is not strictly
// before active_until. Either side may be open.
func ValidateWindow(from, until *time.Time) error {
	if from != nil && until != nil && !from.Before(*until) {
		return apperr.Validation("active_from should be less than active_until")
	}
	return nil
}

// ValidateAgeRange rejects age targeting where age_from is not strictly
// below age_until.
func ValidateAgeRange(from, until *int) error {
	if from != nil && until != nil && *from >= *until {
		return apperr.Validation("age_from should be less than age_until")
	}
	return nil
}

// Validate checks every creation invariant on an assembled promo.
func (p *Promo) Validate() error {
	if p.MaxCount <= 0 || p.MaxCount > MaxActivations {
		return apperr.Validation("max_count must be between 1 and %d", MaxActivations)
	}
	if err := ValidateCodes(p.Mode, p.PromoCommon, p.PromoUnique, p.MaxCount); err != nil {
		return err
	}
	if err := ValidateWindow(p.ActiveFrom, p.ActiveUntil); err != nil {
		return err
	}
	return ValidateAgeRange(p.AgeFrom, p.AgeUntil)
}

// TargetPatch carries explicitly-set targeting fields. A nil field was not
// sent and stays untouched; Categories, when set, replace the whole set.
type TargetPatch struct {
	AgeFrom    *int     `json:"age_from"`
	AgeUntil   *int     `json:"age_until"`
	Country    *string  `json:"country"`
	Categories []string `json:"categories"`
}

// PromoPatch is a partial update. Nil means the field was not sent.
type PromoPatch struct {
	Description *string      `json:"description"`
	ImageURL    *string      `json:"image_url"`
	Target      *TargetPatch `json:"target"`
	MaxCount    *int         `json:"max_count"`
	ActiveFrom  *time.Time   `json:"active_from"`
	ActiveUntil *time.Time   `json:"active_until"`
	Active      *bool        `json:"active"`
}

// CategoriesReplaced reports whether applying the patch replaces the
// category set.
func (p *PromoPatch) CategoriesReplaced() bool {
	return p.Target != nil && p.Target.Categories != nil
}

// Apply merges the patch into promo and re-validates the window and age
// invariants against the merged state. On violation the promo is left
// modified but the caller must discard it.
func (p *PromoPatch) Apply(promo *Promo) error {
	if p.Description != nil {
		promo.Description = *p.Description
	}
	if p.ImageURL != nil {
		promo.ImageURL = p.ImageURL
	}
	if p.MaxCount != nil {
		promo.MaxCount = *p.MaxCount
	}
	if p.ActiveFrom != nil {
		promo.ActiveFrom = p.ActiveFrom
	}
	if p.ActiveUntil != nil {
		promo.ActiveUntil = p.ActiveUntil
	}
	if p.Active != nil {
		promo.Active = *p.Active
	}
	if p.Target != nil {
		if p.Target.AgeFrom != nil {
			promo.AgeFrom = p.Target.AgeFrom
		}
		if p.Target.AgeUntil != nil {
			promo.AgeUntil = p.Target.AgeUntil
		}
		if p.Target.Country != nil {
			promo.Country = p.Target.Country
		}
		if p.Target.Categories != nil {
			promo.Categories = p.Target.Categories
		}
	}

	if promo.MaxCount <= 0 || promo.MaxCount > MaxActivations {
		return apperr.Validation("max_count must be between 1 and %d", MaxActivations)
	}
	if err := ValidateWindow(promo.ActiveFrom, promo.ActiveUntil); err != nil {
		return err
	}
	return ValidateAgeRange(promo.AgeFrom, promo.AgeUntil)
}
