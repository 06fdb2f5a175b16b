package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the principal id, a random token id (jti) tracked in the
// session whitelist, and a refresh marker. Access-gated routes reject
// refresh tokens.
type Claims struct {
	PrincipalID uuid.UUID `json:"id"`
	TokenID     string    `json:"jti"`
	Refresh     bool      `json:"refresh"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for principalID and returns the embedded jti
// alongside it. The jti is what gets whitelisted; revoking it invalidates
// the token without tracking the token string itself.
func GenerateToken(secret string, principalID uuid.UUID, expiration time.Duration, isRefresh bool) (string, string, error) {
	jti := uuid.New().String()
	claims := Claims{
		PrincipalID: principalID,
		TokenID:     jti,
		Refresh:     isRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "promo-platform",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return jti, signed, nil
}

// ParseToken verifies signature and expiry. Any structural or cryptographic
// failure comes back as a single invalid-token error.
func ParseToken(secret string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
