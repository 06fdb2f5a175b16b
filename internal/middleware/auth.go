package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/promo-platform/backend/internal/apperr"
	"github.com/promo-platform/backend/internal/auth"
	"github.com/promo-platform/backend/internal/config"
	"go.uber.org/zap"
)

const CtxPrincipalID = "principal_id"

// AuthMiddleware gates a route group on a live access token for the given
// entity kind. Refresh tokens are rejected, and the embedded jti must still
// be whitelisted: a newer login revokes every earlier token even when it is
// unexpired.
func AuthMiddleware(cfg *config.Config, whitelist *auth.Whitelist, entity auth.Entity, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthenticated("missing authorization header")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return apperr.Unauthenticated("invalid authorization format")
		}

		claims, err := auth.ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("token parse error", zap.Error(err))
			return apperr.Unauthenticated("token is invalid or expired")
		}

		if claims.Refresh {
			return apperr.Unauthenticated("please provide an access token")
		}

		live, err := whitelist.Contains(c.Context(), entity, claims.PrincipalID.String(), claims.TokenID)
		if err != nil {
			return err
		}
		if !live {
			return apperr.Unauthenticated("please provide an access token")
		}

		c.Locals(CtxPrincipalID, claims.PrincipalID)
		return c.Next()
	}
}

func GetPrincipalID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxPrincipalID).(uuid.UUID)
	return id
}
