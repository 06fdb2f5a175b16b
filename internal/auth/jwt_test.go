package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-key-12345"

func TestGenerateAndParseToken(t *testing.T) {
	principalID := uuid.New()

	jti, signed, err := GenerateToken(testSecret, principalID, time.Hour, false)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}

	claims, err := ParseToken(testSecret, signed)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.PrincipalID != principalID {
		t.Errorf("principal id = %s, want %s", claims.PrincipalID, principalID)
	}
	if claims.TokenID != jti {
		t.Errorf("jti in claims = %s, want %s", claims.TokenID, jti)
	}
	if claims.Refresh {
		t.Error("access token should not carry the refresh marker")
	}
	if claims.Issuer != "promo-platform" {
		t.Errorf("issuer = %s, want promo-platform", claims.Issuer)
	}
}

func TestGenerateTokenRefreshMarker(t *testing.T) {
	_, signed, err := GenerateToken(testSecret, uuid.New(), time.Hour, true)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(testSecret, signed)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if !claims.Refresh {
		t.Error("refresh token should carry the refresh marker")
	}
}

func TestGenerateTokenUniqueJTI(t *testing.T) {
	principalID := uuid.New()
	jti1, _, err := GenerateToken(testSecret, principalID, time.Hour, false)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	jti2, _, err := GenerateToken(testSecret, principalID, time.Hour, false)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if jti1 == jti2 {
		t.Error("two tokens for the same principal should carry distinct jtis")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	_, signed, err := GenerateToken(testSecret, uuid.New(), time.Hour, false)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken("a-different-secret", signed); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	_, signed, err := GenerateToken(testSecret, uuid.New(), -time.Minute, false)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(testSecret, signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	for _, tokenStr := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseToken(testSecret, tokenStr); err == nil {
			t.Errorf("expected error for token %q", tokenStr)
		}
	}
}
