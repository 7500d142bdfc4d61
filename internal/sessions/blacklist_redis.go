package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	blacklistMu     sync.RWMutex
	blacklistClient *redis.Client
)

// SetBlacklistClient configures the Redis client used for access-token revocation.
// nil disables revocation checks.
func SetBlacklistClient(c *redis.Client) {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	blacklistClient = c
}

func currentBlacklist() *redis.Client {
	blacklistMu.RLock()
	defer blacklistMu.RUnlock()
	return blacklistClient
}

// digest is how tokens appear in Redis keys. A dump must not leak usable tokens.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func blacklistKey(token string) string {
	return "blacklist:access:" + digest(token)
}

// BlacklistAccessToken revokes token for ttl. No-op without a Redis client.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	c := currentBlacklist()
	if c == nil {
		return nil
	}
	return c.Set(ctx, blacklistKey(token), "1", ttl).Err()
}

// IsAccessTokenBlacklisted reports whether token was revoked. (false, nil) without a Redis client.
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	c := currentBlacklist()
	if c == nil {
		return false, nil
	}
	exists, err := c.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
