package utils

import (
	"net/http"
	"storefront-service/internal/pkg/constvars"
	"strings"
)

// RequestOrigin rebuilds scheme://host as the client saw it, honoring a proxy's X-Forwarded-* headers.
func RequestOrigin(r *http.Request) string {
	scheme := constvars.SchemeHTTP
	if r.TLS != nil {
		scheme = constvars.SchemeHTTPS
	}
	if proto := r.Header.Get(constvars.HeaderXForwardedProto); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	host := r.Host
	if forwardedHost := r.Header.Get(constvars.HeaderXForwardedHost); forwardedHost != "" {
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}
	return scheme + "://" + host
}
