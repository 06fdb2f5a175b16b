package dto

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sup3rSecret!", false},
		{"valid with allowed special", "Passw0rd@", false},
		{"too short", "S3cr!t", true},
		{"too long", strings.Repeat("Aa1!", 16), true},
		{"no uppercase", "sup3rsecret!", true},
		{"no lowercase", "SUP3RSECRET!", true},
		{"no digit", "SuperSecret!", true},
		{"no special", "Sup3rSecret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"user@example.com", false},
		{"a@b.c", false},
		{"no-at-sign", true},
		{"a@b", true},
		{"x@y", true},
		{strings.Repeat("a", 45) + "@e.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"nl", "NL", false},
		{"DE", "DE", false},
		{"Fr", "FR", false},
		{"NLD", "", true},
		{"n", "", true},
		{"1x", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeCountry(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeCountry(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeCountry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompanySignUpRequestValidate(t *testing.T) {
	valid := CompanySignUpRequest{
		Name:     "Acme Promotions",
		Email:    "promo@acme.com",
		Password: "Sup3rSecret!",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	short := valid
	short.Name = "Acme"
	if err := short.Validate(); err == nil {
		t.Error("expected error for 4-char name")
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if err := badEmail.Validate(); err == nil {
		t.Error("expected error for invalid email")
	}
}

func validPromoCreate() PromoCreateRequest {
	return PromoCreateRequest{
		Description: "Ten percent off everything in the store",
		MaxCount:    100,
		Mode:        "COMMON",
		PromoCommon: strPtr("SALE2025"),
	}
}

func TestPromoCreateRequestToModel(t *testing.T) {
	t.Run("valid common", func(t *testing.T) {
		req := validPromoCreate()
		promo, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel() error = %v", err)
		}
		if promo.Mode != "COMMON" || promo.PromoCommon == nil {
			t.Error("assembled promo lost its mode or code")
		}
	})

	t.Run("short description", func(t *testing.T) {
		req := validPromoCreate()
		req.Description = "short"
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for short description")
		}
	})

	t.Run("bad image url", func(t *testing.T) {
		req := validPromoCreate()
		req.ImageURL = strPtr("ftp://example.com/x.png")
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for non-http image url")
		}
	})

	t.Run("dates parsed", func(t *testing.T) {
		req := validPromoCreate()
		req.ActiveFrom = strPtr("2026-01-01")
		req.ActiveUntil = strPtr("2026-06-01")
		promo, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel() error = %v", err)
		}
		if promo.ActiveFrom == nil || promo.ActiveFrom.Year() != 2026 {
			t.Error("active_from not parsed")
		}
	})

	t.Run("inverted dates rejected", func(t *testing.T) {
		req := validPromoCreate()
		req.ActiveFrom = strPtr("2026-06-01")
		req.ActiveUntil = strPtr("2026-01-01")
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for inverted activity window")
		}
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		req := validPromoCreate()
		req.ActiveFrom = strPtr("01.06.2026")
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for malformed date")
		}
	})

	t.Run("unique without pool rejected", func(t *testing.T) {
		req := validPromoCreate()
		req.Mode = "UNIQUE"
		req.PromoCommon = nil
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for UNIQUE promo without codes")
		}
	})

	t.Run("target country normalized", func(t *testing.T) {
		req := validPromoCreate()
		req.Target = &Target{Country: strPtr("nl")}
		promo, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel() error = %v", err)
		}
		if promo.Country == nil || *promo.Country != "NL" {
			t.Error("country should be upcased")
		}
	})

	t.Run("too many categories", func(t *testing.T) {
		req := validPromoCreate()
		cats := make([]string, 21)
		for i := range cats {
			cats[i] = "category"
		}
		req.Target = &Target{Categories: cats}
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for 21 categories")
		}
	})
}

func TestPromoPatchRequestToPatch(t *testing.T) {
	t.Run("empty patch", func(t *testing.T) {
		var req PromoPatchRequest
		patch, err := req.ToPatch()
		if err != nil {
			t.Fatalf("ToPatch() error = %v", err)
		}
		if patch.Description != nil || patch.Target != nil || patch.ActiveFrom != nil {
			t.Error("empty request should produce an empty patch")
		}
	})

	t.Run("invalid field rejected", func(t *testing.T) {
		req := PromoPatchRequest{Description: strPtr("short")}
		if _, err := req.ToPatch(); err == nil {
			t.Error("expected error for short description")
		}
	})

	t.Run("target carried over", func(t *testing.T) {
		req := PromoPatchRequest{Target: &Target{AgeFrom: intPtr(18), Country: strPtr("de")}}
		patch, err := req.ToPatch()
		if err != nil {
			t.Fatalf("ToPatch() error = %v", err)
		}
		if patch.Target == nil || patch.Target.AgeFrom == nil || *patch.Target.AgeFrom != 18 {
			t.Error("age_from lost in conversion")
		}
		if patch.Target.Country == nil || *patch.Target.Country != "DE" {
			t.Error("country should be normalized in conversion")
		}
	})
}

func TestUserSignUpRequestToModel(t *testing.T) {
	valid := func() UserSignUpRequest {
		req := UserSignUpRequest{
			Name:     "Maria",
			Surname:  "Fernandez",
			Email:    "maria@example.com",
			Password: "Sup3rSecret!",
		}
		req.Other.Age = 30
		req.Other.Country = "es"
		return req
	}

	t.Run("valid", func(t *testing.T) {
		req := valid()
		user, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel() error = %v", err)
		}
		if user.Other.Country == nil || *user.Other.Country != "ES" {
			t.Error("country should be upcased")
		}
		if user.Other.Age == nil || *user.Other.Age != 30 {
			t.Error("age lost in conversion")
		}
	})

	t.Run("age out of range", func(t *testing.T) {
		req := valid()
		req.Other.Age = 101
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for age above 100")
		}
	})

	t.Run("empty name", func(t *testing.T) {
		req := valid()
		req.Name = ""
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("weak password", func(t *testing.T) {
		req := valid()
		req.Password = "password"
		if _, err := req.ToModel(); err == nil {
			t.Error("expected error for weak password")
		}
	})
}

func TestCommentRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", "Great promo, works as advertised", false},
		{"too short", "thanks", true},
		{"too long", strings.Repeat("x", 1001), true},
		{"exactly 1000", strings.Repeat("x", 1000), false},
		{"exactly 10", strings.Repeat("x", 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CommentRequest{Text: tt.text}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
