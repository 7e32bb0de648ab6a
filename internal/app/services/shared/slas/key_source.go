package slas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"storefront-service/internal/app/services/shared/metrics"
	"storefront-service/internal/pkg/constvars"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

const maxKeySetBytes = 1 << 20

var (
	ErrKeySourceNotLoaded = errors.New("signing key source has not been loaded")
	ErrFetchKeySet        = errors.New("failed to fetch signing key set")
)

// KeySource is a remote JWKS document bound to one URI. The document is fetched on the first
// Load and reused afterwards.
type KeySource struct {
	uri    string
	client *http.Client

	mu       sync.RWMutex
	jwks     *keyfunc.JWKS
	loadedAt time.Time
}

func NewKeySource(uri string, client *http.Client) *KeySource {
	if client == nil {
		client = http.DefaultClient
	}
	return &KeySource{uri: uri, client: client}
}

func (k *KeySource) URI() string {
	return k.uri
}

func (k *KeySource) Loaded() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.jwks != nil
}

func (k *KeySource) Load(ctx context.Context) error {
	if k.Loaded() {
		return nil
	}

	body, err := k.fetch(ctx)
	if err != nil {
		return err
	}

	jwks, err := keyfunc.NewJSON(json.RawMessage(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchKeySet, err)
	}

	k.mu.Lock()
	k.jwks = jwks
	k.loadedAt = time.Now()
	k.mu.Unlock()
	return nil
}

// Keyfunc selects the verification key by the token's kid header.
func (k *KeySource) Keyfunc(token *jwt.Token) (interface{}, error) {
	k.mu.RLock()
	jwks := k.jwks
	k.mu.RUnlock()

	if jwks == nil {
		return nil, ErrKeySourceNotLoaded
	}
	return jwks.Keyfunc(token)
}

func (k *KeySource) fetch(ctx context.Context) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.OutboundRequestDuration.WithLabelValues(metrics.TargetSlasJWKS).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, k.uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchKeySet, err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchKeySet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetchKeySet, k.uri, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchKeySet, err)
	}
	return body, nil
}

func (k *KeySource) expired(now time.Time, ttl time.Duration) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.jwks == nil {
		return false
	}
	return now.Sub(k.loadedAt) >= ttl
}
