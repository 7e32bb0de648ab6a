package jwks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/app/services/shared/metrics"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/dto/requests"
	"storefront-service/internal/pkg/exceptions"
	"storefront-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxJWKSBytes = 1 << 20

type jwksUsecase struct {
	RedisRepository contracts.RedisRepository
	HTTPClient      *http.Client
	CacheTTL        time.Duration
	Log             *zap.Logger
}

// NewJWKSUsecase builds the proxy. redisRepository may be nil, in which case every request
// goes upstream and callers rely on Cache-Control alone.
func NewJWKSUsecase(
	redisRepository contracts.RedisRepository,
	httpClient *http.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) contracts.JWKSProxyUsecase {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &jwksUsecase{
		RedisRepository: redisRepository,
		HTTPClient:      httpClient,
		CacheTTL:        cacheTTL,
		Log:             logger,
	}
}

func (uc *jwksUsecase) GetJWKS(ctx context.Context, shortCode, tenantID string) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("jwksUsecase.GetJWKS called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingShortCodeKey, shortCode),
		zap.String(constvars.LoggingTenantIDKey, tenantID),
	)

	err := utils.ValidateStruct(&requests.JWKSProxyParams{ShortCode: shortCode, TenantID: tenantID})
	if err != nil {
		uc.Log.Error("jwksUsecase.GetJWKS invalid parameters",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		metrics.JWKSProxyRequests.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, exceptions.ErrJWKSInvalidParams()
	}

	redisKey := fmt.Sprintf(constvars.RedisKeyJWKSProxyFormat, shortCode, tenantID)
	if cached := uc.readCache(ctx, requestID, redisKey); cached != nil {
		metrics.JWKSProxyRequests.WithLabelValues(metrics.ResultCached).Inc()
		return cached, nil
	}

	body, err := uc.fetch(ctx, shortCode, tenantID)
	metrics.JWKSProxyRequests.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		uc.Log.Error("jwksUsecase.GetJWKS error fetching upstream key set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrJWKSFetch(err)
	}

	uc.writeCache(ctx, requestID, redisKey, body)

	uc.Log.Info("jwksUsecase.GetJWKS succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return body, nil
}

// Cache failures only cost an upstream round trip, so they are logged and swallowed.
func (uc *jwksUsecase) readCache(ctx context.Context, requestID, key string) []byte {
	if uc.RedisRepository == nil || uc.CacheTTL <= 0 {
		return nil
	}
	cached, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("jwksUsecase.readCache error reading Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil
	}
	if cached == "" {
		return nil
	}
	return []byte(cached)
}

func (uc *jwksUsecase) writeCache(ctx context.Context, requestID, key string, body []byte) {
	if uc.RedisRepository == nil || uc.CacheTTL <= 0 {
		return
	}
	err := uc.RedisRepository.Set(ctx, key, json.RawMessage(body), uc.CacheTTL)
	if err != nil {
		uc.Log.Warn("jwksUsecase.writeCache error writing Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (uc *jwksUsecase) fetch(ctx context.Context, shortCode, tenantID string) ([]byte, error) {
	start := time.Now()
	defer func() {
		metrics.OutboundRequestDuration.WithLabelValues(metrics.TargetCommerceJWKS).Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf(constvars.SlasCommerceJWKSURLFormat, shortCode, tenantID)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := uc.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("upstream returned a body that is not JSON")
	}
	return body, nil
}
