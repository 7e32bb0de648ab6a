package slas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/app/services/shared/metrics"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/exceptions"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	ErrTenantMismatch  = errors.New("tenant id does not match the configured organization")
	ErrMalformedIssuer = errors.New("token issuer does not carry a tenant id")
	ErrMalformedToken  = errors.New("token cannot be decoded")
	ErrInvalidToken    = errors.New("token signature or claims are invalid")
)

// unknownKIDRefreshCooldown limits forced key set refetches per URI when tokens carry a kid
// the cached set does not know.
const unknownKIDRefreshCooldown = 30 * time.Second

type Claims map[string]interface{}

type Config struct {
	// AppOrigin is the storefront origin that serves the JWKS proxy route.
	AppOrigin      string
	ShortCode      string
	OrganizationID string
	// KeySourceTTL bounds how long a fetched key set is reused. Zero disables reuse.
	KeySourceTTL time.Duration
}

type Validator struct {
	config Config
	client *http.Client
	log    *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	keySources map[string]*KeySource
	refreshed  map[string]time.Time
}

var _ contracts.CallbackTokenValidator = (*Validator)(nil)

func NewValidator(config Config, client *http.Client, logger *zap.Logger) *Validator {
	if client == nil {
		client = http.DefaultClient
	}
	return &Validator{
		config:     config,
		client:     client,
		log:        logger,
		now:        time.Now,
		keySources: make(map[string]*KeySource),
		refreshed:  make(map[string]time.Time),
	}
}

func (v *Validator) configuredTenantID() string {
	return strings.TrimPrefix(v.config.OrganizationID, constvars.SlasOrganizationIDPrefix)
}

// DeriveSigningKeySource returns the key source for tenantID. It fails without touching the
// network when tenantID is not the tenant of the configured organization.
func (v *Validator) DeriveSigningKeySource(tenantID string) (*KeySource, error) {
	configured := v.configuredTenantID()
	if tenantID != configured {
		return nil, fmt.Errorf("%w: the tenant id in the storefront config (%q) does not match the tenant id in the SLAS callback token (%q)",
			ErrTenantMismatch, configured, tenantID)
	}

	uri := fmt.Sprintf(constvars.SlasJWKSPathFormat, v.config.AppOrigin, v.config.ShortCode, tenantID)
	if v.config.KeySourceTTL <= 0 {
		return NewKeySource(uri, v.client), nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	keySource, ok := v.keySources[uri]
	if !ok || keySource.expired(v.now(), v.config.KeySourceTTL) {
		keySource = NewKeySource(uri, v.client)
		v.keySources[uri] = keySource
	}
	return keySource, nil
}

func (v *Validator) ValidateCallbackToken(ctx context.Context, token string) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	v.log.Info("slasValidator.ValidateCallbackToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claims, err := v.validate(ctx, token)
	metrics.CallbackTokenValidations.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		v.log.Error("slasValidator.ValidateCallbackToken failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrSlasTokenValidation(err)
	}

	v.log.Info("slasValidator.ValidateCallbackToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return claims, nil
}

func (v *Validator) validate(ctx context.Context, token string) (Claims, error) {
	tenantID, err := tenantFromUnverifiedToken(token)
	if err != nil {
		return nil, err
	}

	keySource, err := v.DeriveSigningKeySource(tenantID)
	if err != nil {
		return nil, err
	}

	v.log.Debug("slasValidator.validate loading key source",
		zap.String(constvars.LoggingTenantIDKey, tenantID),
		zap.String(constvars.LoggingJWKSURIKey, keySource.URI()),
	)
	cached := keySource.Loaded()
	if err := keySource.Load(ctx); err != nil {
		return nil, err
	}

	verified, err := jwt.Parse(token, keySource.Keyfunc)
	if err != nil && cached && errors.Is(err, keyfunc.ErrKIDNotFound) {
		if fresh, ok := v.replaceKeySource(keySource); ok {
			v.log.Info("slasValidator.validate refetching key source for unknown kid",
				zap.String(constvars.LoggingJWKSURIKey, fresh.URI()),
			)
			if err := fresh.Load(ctx); err != nil {
				return nil, err
			}
			verified, err = jwt.Parse(token, fresh.Keyfunc)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := verified.Claims.(jwt.MapClaims)
	if !ok || !verified.Valid {
		return nil, ErrInvalidToken
	}
	return Claims(claims), nil
}

// replaceKeySource swaps a cached key source whose key set lacks a token's kid. It refuses
// while the URI is inside the refresh cooldown.
func (v *Validator) replaceKeySource(stale *KeySource) (*KeySource, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	uri := stale.URI()
	if current, ok := v.keySources[uri]; ok && current != stale {
		return current, true
	}

	now := v.now()
	if last, ok := v.refreshed[uri]; ok && now.Sub(last) < unknownKIDRefreshCooldown {
		return nil, false
	}

	fresh := NewKeySource(uri, v.client)
	v.keySources[uri] = fresh
	v.refreshed[uri] = now
	return fresh, true
}

// tenantFromUnverifiedToken reads the tenant id out of an issuer shaped like
// "slas/<realm-env>/<tenant>". The result is only good for picking keys.
func tenantFromUnverifiedToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	issuer, _ := claims[constvars.SlasIssuerClaim].(string)
	segments := strings.Split(issuer, constvars.SlasIssuerDelimiter)
	if len(segments) <= constvars.SlasIssuerTenantSegment || segments[constvars.SlasIssuerTenantSegment] == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedIssuer, issuer)
	}
	return segments[constvars.SlasIssuerTenantSegment], nil
}
