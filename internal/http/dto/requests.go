package dto

import (
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/models"
	"github.com/promo-platform/backend/internal/repositories"
)

// Each request shape validates itself and converts into a domain value.
// A request that survives its constructor is structurally valid; domain
// invariants (mode/code coupling, windows) live in models.

type CompanySignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *CompanySignUpRequest) Validate() error {
	if len(r.Name) < 5 || len(r.Name) > 50 {
		return apperr.Validation("name must be 5 to 50 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type Target struct {
	AgeFrom    *int     `json:"age_from,omitempty"`
	AgeUntil   *int     `json:"age_until,omitempty"`
	Country    *string  `json:"country,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

func (t *Target) validate() error {
	if t.AgeFrom != nil {
		if err := validateAge(*t.AgeFrom); err != nil {
			return err
		}
	}
	if t.AgeUntil != nil {
		if err := validateAge(*t.AgeUntil); err != nil {
			return err
		}
	}
	if t.Country != nil {
		code, err := normalizeCountry(*t.Country)
		if err != nil {
			return err
		}
		t.Country = &code
	}
	if len(t.Categories) > 20 {
		return apperr.Validation("at most 20 categories are allowed")
	}
	for _, cat := range t.Categories {
		if len(cat) < 2 || len(cat) > 20 {
			return apperr.Validation("category must be 2 to 20 characters")
		}
	}
	return nil
}

type PromoCreateRequest struct {
	Description string   `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Target      *Target  `json:"target"`
	MaxCount    int      `json:"max_count"`
	ActiveFrom  *string  `json:"active_from"`
	ActiveUntil *string  `json:"active_until"`
	Mode        string   `json:"mode"`
	PromoCommon *string  `json:"promo_common"`
	PromoUnique []string `json:"promo_unique"`
}

// ToModel validates the request and assembles the promo. Domain invariants
// are re-checked by Promo.Validate before any write.
func (r *PromoCreateRequest) ToModel() (*models.Promo, error) {
	if len(r.Description) < 10 || len(r.Description) > 300 {
		return nil, apperr.Validation("description must be 10 to 300 characters")
	}
	if r.ImageURL != nil {
		if err := validateImageURL(*r.ImageURL); err != nil {
			return nil, err
		}
	}
	if r.Target != nil {
		if err := r.Target.validate(); err != nil {
			return nil, err
		}
	}
	if r.PromoCommon != nil && (len(*r.PromoCommon) < 5 || len(*r.PromoCommon) > 30) {
		return nil, apperr.Validation("promo_common must be 5 to 30 characters")
	}
	for _, code := range r.PromoUnique {
		if len(code) < 3 || len(code) > 30 {
			return nil, apperr.Validation("unique promo code must be 3 to 30 characters")
		}
	}

	activeFrom, err := parseDate(r.ActiveFrom)
	if err != nil {
		return nil, err
	}
	activeUntil, err := parseDate(r.ActiveUntil)
	if err != nil {
		return nil, err
	}

	p := &models.Promo{
		Description: r.Description,
		ImageURL:    r.ImageURL,
		ActiveFrom:  activeFrom,
		ActiveUntil: activeUntil,
		MaxCount:    r.MaxCount,
		Mode:        r.Mode,
		PromoCommon: r.PromoCommon,
		PromoUnique: r.PromoUnique,
	}
	if r.Target != nil {
		p.AgeFrom = r.Target.AgeFrom
		p.AgeUntil = r.Target.AgeUntil
		p.Country = r.Target.Country
		p.Categories = r.Target.Categories
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

type PromoPatchRequest struct {
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Target      *Target `json:"target"`
	MaxCount    *int    `json:"max_count"`
	ActiveFrom  *string `json:"active_from"`
	ActiveUntil *string `json:"active_until"`
	Active      *bool   `json:"active"`
}

// ToPatch validates the explicitly-set fields and converts them. The merged
// invariants are checked later, against the promo state after applying.
func (r *PromoPatchRequest) ToPatch() (models.PromoPatch, error) {
	var patch models.PromoPatch

	if r.Description != nil {
		if len(*r.Description) < 10 || len(*r.Description) > 300 {
			return patch, apperr.Validation("description must be 10 to 300 characters")
		}
		patch.Description = r.Description
	}
	if r.ImageURL != nil {
		if err := validateImageURL(*r.ImageURL); err != nil {
			return patch, err
		}
		patch.ImageURL = r.ImageURL
	}
	if r.Target != nil {
		if err := r.Target.validate(); err != nil {
			return patch, err
		}
		patch.Target = &models.TargetPatch{
			AgeFrom:    r.Target.AgeFrom,
			AgeUntil:   r.Target.AgeUntil,
			Country:    r.Target.Country,
			Categories: r.Target.Categories,
		}
	}
	patch.MaxCount = r.MaxCount
	patch.Active = r.Active

	var err error
	if patch.ActiveFrom, err = parseDate(r.ActiveFrom); err != nil {
		return patch, err
	}
	if patch.ActiveUntil, err = parseDate(r.ActiveUntil); err != nil {
		return patch, err
	}
	return patch, nil
}

type UserSignUpRequest struct {
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	AvatarURL *string `json:"avatar_url"`
	Other     struct {
		Age     int    `json:"age"`
		Country string `json:"country"`
	} `json:"other"`
}

func (r *UserSignUpRequest) ToModel() (*models.User, error) {
	if len(r.Name) < 1 || len(r.Name) > 100 {
		return nil, apperr.Validation("name must be 1 to 100 characters")
	}
	if len(r.Surname) < 1 || len(r.Surname) > 120 {
		return nil, apperr.Validation("surname must be 1 to 120 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(r.Password); err != nil {
		return nil, err
	}
	if r.AvatarURL != nil {
		if err := validateImageURL(*r.AvatarURL); err != nil {
			return nil, err
		}
	}
	if err := validateAge(r.Other.Age); err != nil {
		return nil, err
	}
	country, err := normalizeCountry(r.Other.Country)
	if err != nil {
		return nil, err
	}

	age := r.Other.Age
	return &models.User{
		Name:      r.Name,
		Surname:   r.Surname,
		Email:     r.Email,
		AvatarURL: r.AvatarURL,
		Other: models.UserTarget{
			Age:     &age,
			Country: &country,
		},
	}, nil
}

type UserPatchRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	AvatarURL *string `json:"avatar_url"`
	Password  *string `json:"password"`
}

func (r *UserPatchRequest) ToPatch() (repositories.ProfilePatch, error) {
	var patch repositories.ProfilePatch

	if r.Name != nil {
		if len(*r.Name) < 1 || len(*r.Name) > 100 {
			return patch, apperr.Validation("name must be 1 to 100 characters")
		}
		patch.Name = r.Name
	}
	if r.Surname != nil {
		if len(*r.Surname) < 1 || len(*r.Surname) > 120 {
			return patch, apperr.Validation("surname must be 1 to 120 characters")
		}
		patch.Surname = r.Surname
	}
	if r.AvatarURL != nil {
		if err := validateImageURL(*r.AvatarURL); err != nil {
			return patch, err
		}
		patch.AvatarURL = r.AvatarURL
	}
	if r.Password != nil {
		if err := validatePassword(*r.Password); err != nil {
			return patch, err
		}
		patch.Password = r.Password
	}
	return patch, nil
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (r *CommentRequest) Validate() error {
	if len(r.Text) < 10 || len(r.Text) > 1000 {
		return apperr.Validation("text must be 10 to 1000 characters")
	}
	return nil
}
