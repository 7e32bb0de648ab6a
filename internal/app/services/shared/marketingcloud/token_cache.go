package marketingcloud

import (
	"context"
	"sync"
	"time"
)

// Session is a Marketing Cloud bearer token and the instant after which it must be refreshed.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session is stale at now. A session is still usable at the
// exact expiry instant.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || s.AccessToken == "" || now.After(s.ExpiresAt)
}

// TokenCache holds at most one Session. Get returns nil without error when nothing is cached.
type TokenCache interface {
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, session *Session) error
}

// MemoryTokenCache keeps the session in process memory.
type MemoryTokenCache struct {
	mu      sync.RWMutex
	session *Session
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{}
}

func (c *MemoryTokenCache) Get(ctx context.Context) (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, nil
	}
	session := *c.session
	return &session, nil
}

func (c *MemoryTokenCache) Set(ctx context.Context, session *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if session == nil {
		c.session = nil
		return nil
	}
	stored := *session
	c.session = &stored
	return nil
}
