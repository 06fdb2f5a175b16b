package dto

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/promo-platform/backend/internal/apperr"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	urlRe   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

const passwordSpecials = "@$!%*?&"

func validateEmail(email string) error {
	if len(email) < 5 || len(email) > 50 || !emailRe.MatchString(email) {
		return apperr.Validation("invalid email")
	}
	return nil
}

// validatePassword requires 8..60 chars with at least one lowercase,
// uppercase, digit and special character.
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 60 {
		return apperr.Validation("password must be 8 to 60 characters")
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return apperr.Validation("password must contain a lowercase letter, an uppercase letter, a digit and a special character")
	}
	return nil
}

func validateImageURL(url string) error {
	if len(url) > 350 || !urlRe.MatchString(url) {
		return apperr.Validation("invalid image_url")
	}
	return nil
}

// normalizeCountry upcases an ISO 3166-1 alpha-2 code.
func normalizeCountry(code string) (string, error) {
	if len(code) != 2 {
		return "", apperr.Validation("country must be an ISO 3166-1 alpha-2 code")
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return "", apperr.Validation("country must be an ISO 3166-1 alpha-2 code")
		}
	}
	return strings.ToUpper(code), nil
}

func validateAge(age int) error {
	if age < 0 || age > 100 {
		return apperr.Validation("age must be between 0 and 100")
	}
	return nil
}

const dateLayout = "2006-01-02"

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, apperr.Validation("invalid date, expected YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
