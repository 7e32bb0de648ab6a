package constvars

const (
	// SlasOrganizationIDPrefix is stripped from the configured organization id to get the tenant id.
	SlasOrganizationIDPrefix = "f_ecom_"

	SlasIssuerClaim     = "iss"
	SlasIssuerDelimiter = "/"
	// SlasIssuerTenantSegment is the index of the tenant id in "slas/<realm-env>/<tenant>".
	SlasIssuerTenantSegment = 2

	SlasJWKSPathFormat           = "%s/%s/%s/oauth2/jwks"
	SlasCommerceJWKSURLFormat    = "https://%s.api.commercecloud.salesforce.com/shopper/auth/v1/organizations/" + SlasOrganizationIDPrefix + "%s/oauth2/jwks"
	SlasTokenValidationErrPrefix = "SLAS Token Validation Error: "
)

const (
	// JWKS rotate every 30 days; downstream caches may keep them for 14 days.
	JWKSProxyCacheControl = "public, max-age=1209600, stale-while-revalidate=86400"
	// SLAS redirect target never changes, cache for a year.
	SlasCallbackCacheControl = "max-age=31536000"

	RedisKeyJWKSProxyFormat = "JWKS:%s:%s"
)

const (
	DefaultPasswordlessLoginCallbackURI = "/passwordless-login-callback"
	DefaultResetPasswordCallbackURI     = "/reset-password-callback"
	PasswordlessLoginLandingPath        = "/passwordless-login-landing"
	ResetPasswordLandingPath            = "/reset-password-landing"

	MagicLinkQueryToken       = "token"
	MagicLinkQueryEmail       = "email"
	MagicLinkQueryRedirectURL = "redirect_url"
	CallbackQueryRedirectURL  = "redirectUrl"
)

const (
	CallbackKindPasswordlessLogin = "passwordless_login"
	CallbackKindResetPassword     = "reset_password"
)
