package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Entity is the closed set of principal kinds. Anything else is a caller
// bug, not a runtime condition, and panics.
type Entity string

const (
	EntityUser    Entity = "user"
	EntityCompany Entity = "company"
)

// Whitelist tracks the currently valid token ids per principal in a Redis
// set. Expiry lives in the token itself; the whitelist only answers "was
// this jti revoked". Revoking the whole set on sign-in enforces a single
// live session per principal.
type Whitelist struct {
	rdb *redis.Client
}

func NewWhitelist(rdb *redis.Client) *Whitelist {
	return &Whitelist{rdb: rdb}
}

func whitelistKey(entity Entity, principalID string) string {
	switch entity {
	case EntityUser:
		return fmt.Sprintf("whitelist:users:%s", principalID)
	case EntityCompany:
		return fmt.Sprintf("whitelist:companies:%s", principalID)
	default:
		panic(fmt.Sprintf("auth: unknown whitelist entity %q", entity))
	}
}

func (w *Whitelist) Add(ctx context.Context, entity Entity, principalID, jti string) error {
	return w.rdb.SAdd(ctx, whitelistKey(entity, principalID), jti).Err()
}

func (w *Whitelist) Contains(ctx context.Context, entity Entity, principalID, jti string) (bool, error) {
	return w.rdb.SIsMember(ctx, whitelistKey(entity, principalID), jti).Result()
}

func (w *Whitelist) RevokeOne(ctx context.Context, entity Entity, principalID, jti string) error {
	return w.rdb.SRem(ctx, whitelistKey(entity, principalID), jti).Err()
}

func (w *Whitelist) RevokeAll(ctx context.Context, entity Entity, principalID string) error {
	return w.rdb.Unlink(ctx, whitelistKey(entity, principalID)).Err()
}
