package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), 400},
		{"unauthenticated", Unauthenticated("no token"), 401},
		{"forbidden", Forbidden("not yours"), 403},
		{"not found", NotFound("gone"), 404},
		{"conflict", Conflict("duplicate"), 409},
		{"plain error", errors.New("boom"), 500},
		{"nil", nil, 500},
		{"wrapped", fmt.Errorf("context: %w", NotFound("gone")), 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(Conflict("duplicate")); got != KindConflict {
		t.Errorf("KindOf() = %v, want KindConflict", got)
	}
	if got := KindOf(errors.New("boom")); got != 0 {
		t.Errorf("KindOf() for a plain error = %v, want 0", got)
	}
}

func TestMessageFormatting(t *testing.T) {
	err := Validation("promo_unique may hold at most %d codes", 5000)
	if err.Error() != "promo_unique may hold at most 5000 codes" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
