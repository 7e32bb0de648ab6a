package slas

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-service/internal/pkg/exceptions"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testKID            = "test-kid"
	testShortCode      = "abc123"
	testOrganizationID = "f_ecom_aaaa_001"
)

type jwksServer struct {
	*httptest.Server
	hits int32

	mu       sync.Mutex
	document string
}

func newJWKSServer(t *testing.T, key *ecdsa.PrivateKey) *jwksServer {
	t.Helper()
	jwks := &jwksServer{document: jwksDocument(key, testKID)}
	jwks.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&jwks.hits, 1)
		if r.URL.Path != "/abc123/aaaa_001/oauth2/jwks" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		jwks.mu.Lock()
		document := jwks.document
		jwks.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(document))
	}))
	t.Cleanup(jwks.Close)
	return jwks
}

func (s *jwksServer) Serve(document string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = document
}

func (s *jwksServer) Hits() int {
	return int(atomic.LoadInt32(&s.hits))
}

func jwksDocument(key *ecdsa.PrivateKey, kid string) string {
	x := base64.RawURLEncoding.EncodeToString(key.PublicKey.X.FillBytes(make([]byte, 32)))
	y := base64.RawURLEncoding.EncodeToString(key.PublicKey.Y.FillBytes(make([]byte, 32)))
	return fmt.Sprintf(`{"keys":[{"kty":"EC","crv":"P-256","kid":%q,"use":"sig","alg":"ES256","x":%q,"y":%q}]}`, kid, x, y)
}

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, issuer string) string {
	t.Helper()
	return signTokenWithKID(t, key, testKID, issuer)
}

func signTokenWithKID(t *testing.T, key *ecdsa.PrivateKey, kid string, issuer string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": issuer,
		"sub": "cc-slas::zzrf_001::scid:client::usid:123",
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	})
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func newTestValidator(origin string, ttl time.Duration) *Validator {
	return NewValidator(Config{
		AppOrigin:      origin,
		ShortCode:      testShortCode,
		OrganizationID: testOrganizationID,
		KeySourceTTL:   ttl,
	}, http.DefaultClient, zap.NewNop())
}

func TestDeriveSigningKeySource(t *testing.T) {
	validator := newTestValidator("https://test-storefront.com", 0)

	t.Run("Matching tenant", func(t *testing.T) {
		keySource, err := validator.DeriveSigningKeySource("aaaa_001")
		require.NoError(t, err)
		assert.Equal(t, "https://test-storefront.com/abc123/aaaa_001/oauth2/jwks", keySource.URI())
		assert.False(t, keySource.Loaded())
	})

	t.Run("Mismatched tenant", func(t *testing.T) {
		keySource, err := validator.DeriveSigningKeySource("zzrf_001")
		assert.Nil(t, keySource)
		assert.True(t, errors.Is(err, ErrTenantMismatch))
		assert.Contains(t, err.Error(), `"aaaa_001"`)
		assert.Contains(t, err.Error(), `"zzrf_001"`)
	})

	t.Run("Organization id without prefix", func(t *testing.T) {
		other := NewValidator(Config{
			AppOrigin:      "https://test-storefront.com",
			ShortCode:      testShortCode,
			OrganizationID: "aaaa_001",
		}, nil, zap.NewNop())
		keySource, err := other.DeriveSigningKeySource("aaaa_001")
		require.NoError(t, err)
		assert.Equal(t, "https://test-storefront.com/abc123/aaaa_001/oauth2/jwks", keySource.URI())
	})
}

func TestValidateCallbackToken(t *testing.T) {
	key := newKey(t)

	t.Run("Valid token", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		claims, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
		require.NoError(t, err)
		assert.Equal(t, "slas/dev/aaaa_001", claims["iss"])
		assert.Equal(t, 1, server.Hits())
	})

	t.Run("Tenant mismatch makes no network call", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/zzrf_001"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTenantMismatch))
		assert.Equal(t, 0, server.Hits())

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusUnauthorized, customErr.StatusCode)
		assert.True(t, strings.HasPrefix(customErr.DevMessage, "SLAS Token Validation Error: "))
	})

	t.Run("Issuer without tenant segment", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		for _, issuer := range []string{"slas", "slas/dev", "slas/dev/", ""} {
			_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, issuer))
			assert.True(t, errors.Is(err, ErrMalformedIssuer), "issuer %q", issuer)
		}
		assert.Equal(t, 0, server.Hits())
	})

	t.Run("Garbage token", func(t *testing.T) {
		validator := newTestValidator("https://test-storefront.com", 0)

		_, err := validator.ValidateCallbackToken(context.Background(), "not-a-jwt")
		assert.True(t, errors.Is(err, ErrMalformedToken))
	})

	t.Run("Signature from another key", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, newKey(t), "slas/dev/aaaa_001"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidToken))

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("Expired token", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
			"iss": "slas/dev/aaaa_001",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		token.Header["kid"] = testKID
		signed, err := token.SignedString(key)
		require.NoError(t, err)

		_, err = validator.ValidateCallbackToken(context.Background(), signed)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Key set endpoint failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		validator := newTestValidator(server.URL, 0)

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFetchKeySet))
	})
}

func TestValidateCallbackToken_KeySourceCache(t *testing.T) {
	key := newKey(t)

	t.Run("Reused within TTL", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, time.Minute)

		for i := 0; i < 3; i++ {
			_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
			require.NoError(t, err)
		}
		assert.Equal(t, 1, server.Hits())
	})

	t.Run("Refetched after TTL", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, time.Minute)
		now := time.Now()
		validator.now = func() time.Time { return now }

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
		require.NoError(t, err)
		assert.Equal(t, 2, server.Hits())
	})

	t.Run("Disabled", func(t *testing.T) {
		server := newJWKSServer(t, key)
		validator := newTestValidator(server.URL, 0)

		for i := 0; i < 2; i++ {
			_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, key, "slas/dev/aaaa_001"))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, server.Hits())
	})
}

func TestValidateCallbackToken_KeyRotation(t *testing.T) {
	const issuer = "slas/dev/aaaa_001"
	oldKey, rotatedKey := newKey(t), newKey(t)

	t.Run("Unknown kid refetches within TTL", func(t *testing.T) {
		server := newJWKSServer(t, oldKey)
		validator := newTestValidator(server.URL, 5*time.Minute)

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, oldKey, issuer))
		require.NoError(t, err)

		server.Serve(jwksDocument(rotatedKey, "kid-2"))
		claims, err := validator.ValidateCallbackToken(context.Background(), signTokenWithKID(t, rotatedKey, "kid-2", issuer))
		require.NoError(t, err)
		assert.Equal(t, issuer, claims["iss"])
		assert.Equal(t, 2, server.Hits())

		_, err = validator.ValidateCallbackToken(context.Background(), signTokenWithKID(t, rotatedKey, "kid-2", issuer))
		require.NoError(t, err)
		assert.Equal(t, 2, server.Hits(), "refreshed key set is cached again")
	})

	t.Run("Refetch is rate limited", func(t *testing.T) {
		server := newJWKSServer(t, oldKey)
		validator := newTestValidator(server.URL, 5*time.Minute)
		now := time.Now()
		validator.now = func() time.Time { return now }

		_, err := validator.ValidateCallbackToken(context.Background(), signToken(t, oldKey, issuer))
		require.NoError(t, err)

		_, err = validator.ValidateCallbackToken(context.Background(), signTokenWithKID(t, oldKey, "kid-unknown", issuer))
		assert.True(t, errors.Is(err, ErrInvalidToken))
		assert.Equal(t, 2, server.Hits())

		_, err = validator.ValidateCallbackToken(context.Background(), signTokenWithKID(t, oldKey, "kid-other", issuer))
		assert.True(t, errors.Is(err, ErrInvalidToken))
		assert.Equal(t, 2, server.Hits(), "no refetch inside the cooldown")

		now = now.Add(unknownKIDRefreshCooldown)
		server.Serve(jwksDocument(rotatedKey, "kid-2"))
		_, err = validator.ValidateCallbackToken(context.Background(), signTokenWithKID(t, rotatedKey, "kid-2", issuer))
		require.NoError(t, err)
		assert.Equal(t, 3, server.Hits())
	})
}
