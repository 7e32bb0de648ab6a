package middlewares

import (
	"net/http"

	"storefront-service/internal/pkg/constvars"
)

// SecurityHeaders sets the baseline response headers for every route. HSTS is only sent
// outside development, where the service sits behind TLS.
func (m *Middlewares) SecurityHeaders(next http.Handler) http.Handler {
	hsts := m.InternalConfig.App.Env != constvars.AppEnvDevelopment
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set(constvars.HeaderXContentTypeOptions, constvars.SecurityContentTypeNoSniff)
		header.Set(constvars.HeaderXFrameOptions, constvars.SecurityFrameSameOrigin)
		header.Set(constvars.HeaderXXSSProtection, constvars.SecurityXSSProtectionOff)
		header.Set(constvars.HeaderXDNSPrefetchControl, constvars.SecurityDNSPrefetchOff)
		header.Set(constvars.HeaderReferrerPolicy, constvars.SecurityReferrerNoReferrer)
		header.Set(constvars.HeaderCrossOriginOpenerPolicy, constvars.SecurityOpenerSameOrigin)
		header.Set(constvars.HeaderXPermittedCrossDomainPols, constvars.SecurityCrossDomainNone)
		if hsts {
			header.Set(constvars.HeaderStrictTransportSecurity, constvars.SecurityStrictTransportSecurity)
		}
		next.ServeHTTP(w, r)
	})
}
