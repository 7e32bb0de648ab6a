package marketingcloud

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/app/services/shared/metrics"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/dto/requests"
	"storefront-service/internal/pkg/dto/responses"
	"storefront-service/internal/pkg/exceptions"
	"storefront-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrCredentialExchange = errors.New("Failed to fetch Marketing Cloud access token. Check your Marketing Cloud credentials and try again.")
	ErrSendEmail          = errors.New("Failed to send email to Marketing Cloud")
)

type MagicLinkEmailRequest = contracts.MagicLinkEmailRequest

type Config struct {
	ClientID     string
	ClientSecret string
	Subdomain    string
}

type Client struct {
	config     Config
	log        *zap.Logger
	httpClient *http.Client
	cache      TokenCache
	now        func() time.Time

	// refresh is nil unless single-flight token refresh is enabled.
	refresh *singleflight.Group
}

var _ contracts.MagicLinkEmailDispatcher = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTokenCache(cache TokenCache) Option {
	return func(c *Client) { c.cache = cache }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSingleFlight makes concurrent callers that find no usable token share one exchange.
// Callers then wait on the exchange in flight instead of starting their own.
func WithSingleFlight() Option {
	return func(c *Client) { c.refresh = &singleflight.Group{} }
}

func NewClient(config Config, logger *zap.Logger, opts ...Option) *Client {
	client := &Client{
		config:     config,
		log:        logger,
		httpClient: http.DefaultClient,
		cache:      NewMemoryTokenCache(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

func (c *Client) DispatchMagicLinkEmail(ctx context.Context, request MagicLinkEmailRequest) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.log.Info("marketingCloudClient.DispatchMagicLinkEmail called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, request.TemplateID),
	)

	c.warnMissingConfig(requestID)

	token, err := c.accessToken(ctx)
	if err != nil {
		c.log.Error("marketingCloudClient.DispatchMagicLinkEmail error getting access token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	messageKey, err := utils.GenerateRandomHex(constvars.MarketingCloudMessageKeyBytes)
	if err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	response, err := c.sendEmail(ctx, token, messageKey, request)
	if err != nil {
		c.log.Error("marketingCloudClient.DispatchMagicLinkEmail error sending email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMessageIDKey, messageKey),
			zap.Error(err),
		)
		return nil, err
	}

	c.log.Info("marketingCloudClient.DispatchMagicLinkEmail succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMessageIDKey, messageKey),
	)
	return response, nil
}

func (c *Client) warnMissingConfig(requestID string) {
	settings := []struct{ name, value string }{
		{constvars.MarketingCloudEnvClientID, c.config.ClientID},
		{constvars.MarketingCloudEnvClientSecret, c.config.ClientSecret},
		{constvars.MarketingCloudEnvSubdomain, c.config.Subdomain},
	}
	for _, setting := range settings {
		if setting.value == "" {
			c.log.Warn(setting.name+" is not set in the environment variables.",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
		}
	}
}

// accessToken returns the cached token, exchanging credentials when it is absent or stale.
// Without single-flight, concurrent callers may each perform an exchange; the last write wins
// and every token they obtain is valid.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	session, err := c.cache.Get(ctx)
	if err != nil {
		c.log.Warn("marketingCloudClient.accessToken cannot read token cache", zap.Error(err))
		session = nil
	}
	if !session.Expired(c.now()) {
		return session.AccessToken, nil
	}

	if c.refresh == nil {
		return c.exchangeAndStore(ctx)
	}

	// The shared exchange outlives any single caller; each caller still stops waiting on its own ctx.
	flight := c.refresh.DoChan(constvars.MarketingCloudSingleFlightKey, func() (interface{}, error) {
		return c.exchangeAndStore(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return "", result.Err
		}
		return result.Val.(string), nil
	}
}

func (c *Client) exchangeAndStore(ctx context.Context) (string, error) {
	token, err := c.exchangeCredentials(ctx)
	metrics.MarketingCloudTokenExchanges.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return "", err
	}

	session := &Session{
		AccessToken: token,
		ExpiresAt:   c.now().Add(constvars.MarketingCloudTokenLifetime),
	}
	err = c.cache.Set(ctx, session)
	if err != nil {
		c.log.Warn("marketingCloudClient.exchangeAndStore cannot write token cache", zap.Error(err))
	}
	return token, nil
}

func (c *Client) exchangeCredentials(ctx context.Context) (string, error) {
	start := time.Now()
	defer func() {
		metrics.OutboundRequestDuration.WithLabelValues(metrics.TargetMarketingCloudAuth).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(requests.MarketingCloudTokenRequest{
		GrantType:    constvars.MarketingCloudGrantType,
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
	})
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf(constvars.MarketingCloudTokenURLFormat, c.config.Subdomain)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return "", fmt.Errorf("%w (status %d)", ErrCredentialExchange, resp.StatusCode)
	}

	var token responses.MarketingCloudToken
	err = json.NewDecoder(resp.Body).Decode(&token)
	if err != nil {
		return "", exceptions.ErrCannotParseJSON(err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w (empty access_token)", ErrCredentialExchange)
	}
	return token.AccessToken, nil
}

func (c *Client) sendEmail(ctx context.Context, token, messageKey string, request MagicLinkEmailRequest) (map[string]interface{}, error) {
	start := time.Now()
	defer func() {
		metrics.OutboundRequestDuration.WithLabelValues(metrics.TargetMarketingCloudSend).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(requests.MarketingCloudSendEmailRequest{
		DefinitionKey: request.TemplateID,
		Recipient: requests.MarketingCloudRecipient{
			ContactKey: request.EmailID,
			To:         request.EmailID,
			Attributes: map[string]string{
				constvars.MarketingCloudMagicLinkAttr: request.MagicLink,
			},
		},
	})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	url := fmt.Sprintf(constvars.MarketingCloudSendURLFormat, c.config.Subdomain, messageKey)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if !isSuccessStatus(resp.StatusCode) {
		return nil, fmt.Errorf("%w (status %d)", ErrSendEmail, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}

	result := map[string]interface{}{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}
	err = json.Unmarshal(raw, &result)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return result, nil
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code <= 299
}
