package marketingcloud

import (
	"context"
	"time"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// RedisTokenCache shares one session between every replica pointed at the same Redis.
type RedisTokenCache struct {
	redis contracts.RedisRepository
	key   string
	now   func() time.Time
}

func NewRedisTokenCache(redis contracts.RedisRepository) *RedisTokenCache {
	return &RedisTokenCache{
		redis: redis,
		key:   constvars.MarketingCloudRedisSessionKey,
		now:   time.Now,
	}
}

func (c *RedisTokenCache) Get(ctx context.Context) (*Session, error) {
	raw, err := c.redis.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var session Session
	err = json.Unmarshal([]byte(raw), &session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &session, nil
}

// Set stores the session until it expires. Already expired sessions remove the key.
func (c *RedisTokenCache) Set(ctx context.Context, session *Session) error {
	if session == nil {
		return c.redis.Delete(ctx, c.key)
	}

	ttl := session.ExpiresAt.Sub(c.now())
	if ttl <= 0 {
		return c.redis.Delete(ctx, c.key)
	}
	return c.redis.Set(ctx, c.key, session, ttl)
}
