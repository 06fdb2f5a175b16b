package models

import (
	"testing"
	"time"

	"github.com/promo-platform/backend/internal/apperr"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidateCodes(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		promoCommon *string
		promoUnique []string
		maxCount    int
		wantErr     bool
	}{
		{"common with code", PromoModeCommon, strPtr("SALE2025"), nil, 100, false},
		{"common missing code", PromoModeCommon, nil, nil, 100, true},
		{"common empty code", PromoModeCommon, strPtr(""), nil, 100, true},
		{"common with unique codes", PromoModeCommon, strPtr("SALE2025"), []string{"a1b2c3"}, 100, true},
		{"unique with pool", PromoModeUnique, nil, []string{"a1b2c3", "d4e5f6"}, 2, false},
		{"unique empty pool", PromoModeUnique, nil, nil, 2, true},
		{"unique max_count of 1", PromoModeUnique, nil, []string{"a1b2c3"}, 1, true},
		{"unique with common code", PromoModeUnique, strPtr("SALE2025"), []string{"a1b2c3"}, 2, true},
		{"unknown mode", "SHARED", strPtr("SALE2025"), nil, 100, true},
		{"empty mode", "", nil, nil, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCodes(tt.mode, tt.promoCommon, tt.promoUnique, tt.maxCount)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCodes() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCodesPoolLimit(t *testing.T) {
	pool := make([]string, MaxUniqueCodes)
	for i := range pool {
		pool[i] = "code"
	}
	if err := ValidateCodes(PromoModeUnique, nil, pool, 10); err != nil {
		t.Errorf("pool of %d codes should be accepted, got %v", MaxUniqueCodes, err)
	}
	pool = append(pool, "one-too-many")
	if err := ValidateCodes(PromoModeUnique, nil, pool, 10); err == nil {
		t.Errorf("pool of %d codes should be rejected", MaxUniqueCodes+1)
	}
}

func TestValidateWindow(t *testing.T) {
	day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		from    *time.Time
		until   *time.Time
		wantErr bool
	}{
		{"both open", nil, nil, false},
		{"open from", nil, timePtr(day2), false},
		{"open until", timePtr(day1), nil, false},
		{"ordered", timePtr(day1), timePtr(day2), false},
		{"inverted", timePtr(day2), timePtr(day1), true},
		{"equal", timePtr(day1), timePtr(day1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.from, tt.until)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAgeRange(t *testing.T) {
	tests := []struct {
		name    string
		from    *int
		until   *int
		wantErr bool
	}{
		{"both open", nil, nil, false},
		{"ordered", intPtr(18), intPtr(35), false},
		{"equal", intPtr(25), intPtr(25), true},
		{"inverted", intPtr(35), intPtr(18), true},
		{"open until", intPtr(18), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAgeRange(tt.from, tt.until)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAgeRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func validCommonPromo() *Promo {
	return &Promo{
		Description: "Ten percent off everything in the store",
		MaxCount:    100,
		Mode:        PromoModeCommon,
		PromoCommon: strPtr("SALE2025"),
	}
}

func TestPromoValidate(t *testing.T) {
	t.Run("valid common", func(t *testing.T) {
		if err := validCommonPromo().Validate(); err != nil {
			t.Errorf("expected valid promo, got %v", err)
		}
	})

	t.Run("zero max_count", func(t *testing.T) {
		p := validCommonPromo()
		p.MaxCount = 0
		if err := p.Validate(); err == nil {
			t.Error("expected error for max_count of 0")
		}
	})

	t.Run("max_count above limit", func(t *testing.T) {
		p := validCommonPromo()
		p.MaxCount = MaxActivations + 1
		if err := p.Validate(); err == nil {
			t.Error("expected error for max_count above limit")
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		p := validCommonPromo()
		p.ActiveFrom = timePtr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
		p.ActiveUntil = timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
		err := p.Validate()
		if err == nil {
			t.Fatal("expected error for inverted window")
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation kind, got %v", apperr.KindOf(err))
		}
	})
}

func TestPromoPatchApply(t *testing.T) {
	t.Run("untouched fields survive", func(t *testing.T) {
		p := validCommonPromo()
		p.AgeFrom = intPtr(18)
		p.Country = strPtr("NL")
		p.Categories = []string{"coffee", "pastry"}

		patch := PromoPatch{Description: strPtr("Twenty percent off everything")}
		if err := patch.Apply(p); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}

		if p.Description != "Twenty percent off everything" {
			t.Errorf("description not applied, got %q", p.Description)
		}
		if p.AgeFrom == nil || *p.AgeFrom != 18 {
			t.Error("age_from should survive an unrelated patch")
		}
		if p.Country == nil || *p.Country != "NL" {
			t.Error("country should survive an unrelated patch")
		}
		if len(p.Categories) != 2 {
			t.Error("categories should survive an unrelated patch")
		}
	})

	t.Run("target categories replace the set", func(t *testing.T) {
		p := validCommonPromo()
		p.Categories = []string{"coffee", "pastry"}

		patch := PromoPatch{Target: &TargetPatch{Categories: []string{"tea"}}}
		if err := patch.Apply(p); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if len(p.Categories) != 1 || p.Categories[0] != "tea" {
			t.Errorf("categories = %v, want [tea]", p.Categories)
		}
		if !patch.CategoriesReplaced() {
			t.Error("CategoriesReplaced() should report true")
		}
	})

	t.Run("nil target leaves categories alone", func(t *testing.T) {
		patch := PromoPatch{Active: boolPtr(false)}
		if patch.CategoriesReplaced() {
			t.Error("CategoriesReplaced() should report false without a target")
		}
	})

	t.Run("merged window violation rejected", func(t *testing.T) {
		p := validCommonPromo()
		p.ActiveFrom = timePtr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

		patch := PromoPatch{ActiveUntil: timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))}
		err := patch.Apply(p)
		if err == nil {
			t.Fatal("expected error when patch inverts the window against stored active_from")
		}
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("expected validation kind, got %v", apperr.KindOf(err))
		}
	})

	t.Run("merged age violation rejected", func(t *testing.T) {
		p := validCommonPromo()
		p.AgeUntil = intPtr(30)

		patch := PromoPatch{Target: &TargetPatch{AgeFrom: intPtr(40)}}
		if err := patch.Apply(p); err == nil {
			t.Fatal("expected error when patch inverts the age range against stored age_until")
		}
	})

	t.Run("equal age bounds rejected", func(t *testing.T) {
		p := validCommonPromo()
		patch := PromoPatch{Target: &TargetPatch{AgeFrom: intPtr(25), AgeUntil: intPtr(25)}}
		if err := patch.Apply(p); err == nil {
			t.Fatal("expected error when patch sets age_from equal to age_until")
		}
	})

	t.Run("max_count patched to zero rejected", func(t *testing.T) {
		p := validCommonPromo()
		patch := PromoPatch{MaxCount: intPtr(0)}
		if err := patch.Apply(p); err == nil {
			t.Fatal("expected error for max_count of 0")
		}
	})

	t.Run("deactivation", func(t *testing.T) {
		p := validCommonPromo()
		p.Active = true
		patch := PromoPatch{Active: boolPtr(false)}
		if err := patch.Apply(p); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if p.Active {
			t.Error("active should be false after patch")
		}
	})
}

func boolPtr(b bool) *bool { return &b }
