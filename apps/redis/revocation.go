package redis

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/getevo/evo/v2/lib/log"
)

const revocationPrefix = "portal:revoked:"

// revocationKey hashes the token so raw bearer tokens never land in Redis.
func revocationKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revocationPrefix + hex.EncodeToString(sum[:])
}

// RevokeToken puts an access token on the denylist until it would have expired
// anyway. Best-effort: without Redis this is a no-op.
func RevokeToken(token string, ttl time.Duration) {
	if !IsAvailable() || token == "" {
		return
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := Client.Set(ctx, revocationKey(token), 1, ttl).Err(); err != nil {
		log.Warning("Failed to revoke token: %v", err)
	}
}

// IsRevoked reports whether a token has been signed out. Errors count as not
// revoked so a Redis outage cannot lock everyone out.
func IsRevoked(token string) bool {
	if !IsAvailable() || token == "" {
		return false
	}
	n, err := Client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		log.Warning("Revocation check failed: %v", err)
		return false
	}
	return n > 0
}
