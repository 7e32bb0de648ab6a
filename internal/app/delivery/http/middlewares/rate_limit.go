package middlewares

import (
	"net/http"
	"time"

	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/exceptions"
	"storefront-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// GlobalRateLimiter bounds every route per client IP per second.
func (m *Middlewares) GlobalRateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.tooManyRequests),
	)
}

// CallbackRateLimiter is the tighter per-minute budget for routes that send e-mail.
func (m *Middlewares) CallbackRateLimiter() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.CallbackRateLimitPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.tooManyRequests),
	)
}

func (m *Middlewares) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	utils.BuildErrorResponse(m.Log, w, exceptions.WrapWithoutError(
		constvars.StatusTooManyRequests,
		constvars.ErrClientTooManyRequests,
		"rate limit exceeded for "+r.URL.Path,
	))
}
