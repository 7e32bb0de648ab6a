package routers

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-service/internal/app/config"
	"storefront-service/internal/app/delivery/http/controllers"
	"storefront-service/internal/app/delivery/http/middlewares"
	"storefront-service/internal/app/services/core/jwks"
	"storefront-service/internal/app/services/core/magiclink"
	"storefront-service/internal/app/services/shared/marketingcloud"
	"storefront-service/internal/app/services/shared/slas"
	"storefront-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// upstreams stands in for the commerce API and Marketing Cloud.
type upstreams struct {
	keySet string

	mu    sync.Mutex
	sends []map[string]interface{}
}

func (u *upstreams) RoundTrip(req *http.Request) (*http.Response, error) {
	status, body := http.StatusOK, ""
	switch {
	case strings.HasSuffix(req.URL.Host, ".api.commercecloud.salesforce.com"):
		body = u.keySet
	case strings.HasSuffix(req.URL.Host, ".auth.marketingcloudapis.com"):
		body = `{"access_token":"mc-token","expires_in":1200}`
	case strings.HasSuffix(req.URL.Host, ".rest.marketingcloudapis.com"):
		var sent map[string]interface{}
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &sent)
		u.mu.Lock()
		u.sends = append(u.sends, sent)
		u.mu.Unlock()
		status, body = http.StatusAccepted, `{"requestId":"r1"}`
	default:
		status = http.StatusNotFound
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func (u *upstreams) Sends() []map[string]interface{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]map[string]interface{}(nil), u.sends...)
}

func magicLinkOf(t *testing.T, sent map[string]interface{}) string {
	t.Helper()
	recipient, ok := sent["recipient"].(map[string]interface{})
	require.True(t, ok)
	attributes, ok := recipient["attributes"].(map[string]interface{})
	require.True(t, ok)
	link, _ := attributes["magic-link"].(string)
	return link
}

type testApp struct {
	server    *httptest.Server
	upstreams *upstreams
	key       *ecdsa.PrivateKey
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	x := base64.RawURLEncoding.EncodeToString(key.PublicKey.X.FillBytes(make([]byte, 32)))
	y := base64.RawURLEncoding.EncodeToString(key.PublicKey.Y.FillBytes(make([]byte, 32)))
	up := &upstreams{
		keySet: fmt.Sprintf(`{"keys":[{"kty":"EC","crv":"P-256","kid":"k1","use":"sig","alg":"ES256","x":%q,"y":%q}]}`, x, y),
	}
	upstreamClient := &http.Client{Transport: up}

	router := chi.NewRouter()
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	internalConfig := &config.InternalConfig{
		App: config.App{
			Version:                    "test",
			MaxRequests:                1000,
			CallbackRateLimitPerMinute: 1000,
			RequestBodyLimitInKilobyte: 64,
			MetricsPath:                "/metrics",
		},
		CommerceAPI: config.AppCommerceAPI{
			OrganizationID:               "f_ecom_aaaa_001",
			ShortCode:                    "abc123",
			PasswordlessLoginCallbackURI: constvars.DefaultPasswordlessLoginCallbackURI,
			ResetPasswordCallbackURI:     constvars.DefaultResetPasswordCallbackURI,
		},
	}

	validator := slas.NewValidator(slas.Config{
		AppOrigin:      server.URL,
		ShortCode:      internalConfig.CommerceAPI.ShortCode,
		OrganizationID: internalConfig.CommerceAPI.OrganizationID,
	}, server.Client(), logger)
	dispatcher := marketingcloud.NewClient(marketingcloud.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Subdomain:    "mc",
	}, logger, marketingcloud.WithHTTPClient(upstreamClient))

	magicLinkUsecase := magiclink.NewMagicLinkUsecase(validator, dispatcher, magiclink.Templates{
		PasswordlessLogin: "pwdless",
		ResetPassword:     "reset",
	}, logger)
	jwksUsecase := jwks.NewJWKSUsecase(nil, upstreamClient, 0, logger)

	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewMagicLinkController(logger, magicLinkUsecase),
		controllers.NewJWKSController(logger, jwksUsecase),
		controllers.NewHealthController(logger, nil, internalConfig),
	)

	return &testApp{server: server, upstreams: up, key: key}
}

func (app *testApp) callbackToken(t *testing.T, key *ecdsa.PrivateKey, issuer string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": issuer,
		"exp": time.Now().Add(5 * time.Minute).Unix(),
	})
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func (app *testApp) post(t *testing.T, path, contentType, body, callbackToken string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, app.server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	if callbackToken != "" {
		req.Header.Set("x-slas-callback-token", callbackToken)
	}
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPasswordlessLoginCallback(t *testing.T) {
	app := newTestApp(t)
	body := `{"email_id":"shopper@example.com","token":"12345678"}`

	t.Run("Valid callback sends magic link", func(t *testing.T) {
		token := app.callbackToken(t, app.key, "slas/dev/aaaa_001")
		resp := app.post(t, "/passwordless-login-callback?redirectUrl=%2Fcart", "application/json", body, token)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		sends := app.upstreams.Sends()
		require.Len(t, sends, 1)
		assert.Equal(t, "pwdless", sends[0]["definitionKey"])
		assert.Equal(t, app.server.URL+"/passwordless-login-landing?token=12345678&redirect_url=%2Fcart", magicLinkOf(t, sends[0]))
	})

	t.Run("Forged token is rejected", func(t *testing.T) {
		before := len(app.upstreams.Sends())
		other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		resp := app.post(t, "/passwordless-login-callback", "application/json", body, app.callbackToken(t, other, "slas/dev/aaaa_001"))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Len(t, app.upstreams.Sends(), before)
	})

	t.Run("Token for another tenant is rejected", func(t *testing.T) {
		resp := app.post(t, "/passwordless-login-callback", "application/json", body, app.callbackToken(t, app.key, "slas/dev/zzrf_001"))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Missing token header", func(t *testing.T) {
		resp := app.post(t, "/passwordless-login-callback", "application/json", body, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Oversized body", func(t *testing.T) {
		token := app.callbackToken(t, app.key, "slas/dev/aaaa_001")
		oversized := `{"email_id":"shopper@example.com","token":"` + strings.Repeat("a", 65<<10) + `"}`
		resp := app.post(t, "/passwordless-login-callback", "application/json", oversized, token)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("Oversized form body", func(t *testing.T) {
		token := app.callbackToken(t, app.key, "slas/dev/aaaa_001")
		form := url.Values{"email_id": {"shopper@example.com"}, "token": {strings.Repeat("a", 65<<10)}}
		resp := app.post(t, "/reset-password-callback", "application/x-www-form-urlencoded", form.Encode(), token)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run("Invalid body", func(t *testing.T) {
		token := app.callbackToken(t, app.key, "slas/dev/aaaa_001")
		resp := app.post(t, "/passwordless-login-callback", "application/json", `{"email_id":"nope","token":"1"}`, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestResetPasswordCallback_Form(t *testing.T) {
	app := newTestApp(t)
	form := url.Values{"email_id": {"shopper@example.com"}, "token": {"87654321"}}

	token := app.callbackToken(t, app.key, "slas/dev/aaaa_001")
	resp := app.post(t, "/reset-password-callback", "application/x-www-form-urlencoded", form.Encode(), token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	sends := app.upstreams.Sends()
	require.Len(t, sends, 1)
	assert.Equal(t, "reset", sends[0]["definitionKey"])
	assert.Equal(t, app.server.URL+"/reset-password-landing?token=87654321&email=shopper%40example.com", magicLinkOf(t, sends[0]))
}

func TestSlasRedirectCallback(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.server.Client().Get(app.server.URL + "/callback")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "max-age=31536000", resp.Header.Get("Cache-Control"))
	assert.Empty(t, body)
}

func TestJWKSProxyRoute(t *testing.T) {
	app := newTestApp(t)

	t.Run("Proxies key set", func(t *testing.T) {
		resp, err := app.server.Client().Get(app.server.URL + "/abc123/aaaa_001/oauth2/jwks")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "public, max-age=1209600, stale-while-revalidate=86400", resp.Header.Get("Cache-Control"))
		assert.JSONEq(t, app.upstreams.keySet, string(body))
	})

	t.Run("Rejects bad tenant", func(t *testing.T) {
		resp, err := app.server.Client().Get(app.server.URL + "/abc123/not-a-tenant/oauth2/jwks")
		require.NoError(t, err)
		defer resp.Body.Close()

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Bad request parameters: Tenant ID or short code is invalid.", payload["message"])
	})
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.server.Client().Get(app.server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", resp.Header.Get("X-Frame-Options"))

	resp, err = app.server.Client().Get(app.server.URL + "/abc123/aaaa_001/oauth2/jwks")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.server.Client().Get(app.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "storefront_jwks_proxy_requests_total")
}
