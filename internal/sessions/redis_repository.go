package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps refresh sessions in Redis with a TTL matching their
// expiry. Keys are "<prefix><sha256(refresh)>" and the stored value omits the
// refresh token, so neither leaks a usable credential.
type RedisRepository struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisRepository creates a Redis-based session repository. An empty prefix
// means "session:".
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *RedisRepository) key(refresh string) string {
	return r.prefix + digest(refresh)
}

func (r *RedisRepository) Create(ctx context.Context, s *Session) error {
	stored := *s
	stored.RefreshToken = ""
	b, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return r.client.Set(ctx, r.key(s.RefreshToken), b, ttl).Err()
}

// GetByRefresh returns (nil, nil) for unknown or lapsed sessions.
func (r *RedisRepository) GetByRefresh(ctx context.Context, refresh string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(refresh)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if r.now().After(s.ExpiresAt) {
		_ = r.client.Del(ctx, r.key(refresh)).Err()
		return nil, nil
	}
	s.RefreshToken = refresh
	return &s, nil
}

func (r *RedisRepository) DeleteByRefresh(ctx context.Context, refresh string) error {
	return r.client.Del(ctx, r.key(refresh)).Err()
}
