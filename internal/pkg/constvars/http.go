package constvars

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMETextPlain       = "text/plain"
	MIMEApplicationJSON = "application/json"
	MIMEApplicationForm = "application/x-www-form-urlencoded"
	MIMEMultipartForm   = "multipart/form-data"

	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK                    = 200
	StatusAccepted              = 202
	StatusNoContent             = 204
	StatusBadRequest            = 400
	StatusUnauthorized          = 401
	StatusForbidden             = 403
	StatusNotFound              = 404
	StatusMethodNotAllowed      = 405
	StatusRequestTimeout        = 408
	StatusRequestEntityTooLarge = 413
	StatusUnsupportedMediaType  = 415
	StatusTooManyRequests       = 429

	StatusInternalServerError = 500
	StatusNotImplemented      = 501
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAuthorization      = "Authorization"
	HeaderCacheControl       = "Cache-Control"
	HeaderAccept             = "Accept"
	HeaderContentType        = "Content-Type"
	HeaderContentLength      = "Content-Length"
	HeaderXForwardedFor      = "X-Forwarded-For"
	HeaderXForwardedHost     = "X-Forwarded-Host"
	HeaderXForwardedProto    = "X-Forwarded-Proto"
	HeaderHost               = "Host"
	HeaderUserAgent          = "User-Agent"
	HeaderRetryAfter         = "Retry-After"
	HeaderXRequestID         = "X-Request-ID"
	HeaderXCSRFToken         = "X-CSRF-Token"
	HeaderLink               = "Link"
	HeaderXSlasCallbackToken = "X-Slas-Callback-Token"

	HeaderStrictTransportSecurity   = "Strict-Transport-Security"
	HeaderXContentTypeOptions       = "X-Content-Type-Options"
	HeaderXFrameOptions             = "X-Frame-Options"
	HeaderXXSSProtection            = "X-XSS-Protection"
	HeaderXDNSPrefetchControl       = "X-DNS-Prefetch-Control"
	HeaderReferrerPolicy            = "Referrer-Policy"
	HeaderCrossOriginOpenerPolicy   = "Cross-Origin-Opener-Policy"
	HeaderXPermittedCrossDomainPols = "X-Permitted-Cross-Domain-Policies"
)

// Baseline security header values applied to every response.
const (
	SecurityStrictTransportSecurity = "max-age=15552000; includeSubDomains"
	SecurityContentTypeNoSniff      = "nosniff"
	SecurityFrameSameOrigin         = "SAMEORIGIN"
	SecurityXSSProtectionOff        = "0"
	SecurityDNSPrefetchOff          = "off"
	SecurityReferrerNoReferrer      = "no-referrer"
	SecurityOpenerSameOrigin        = "same-origin"
	SecurityCrossDomainNone         = "none"
)

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)
