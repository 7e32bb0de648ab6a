package config

type InternalConfig struct {
	App            App               `mapstructure:"app"`
	CommerceAPI    AppCommerceAPI    `mapstructure:"commerce_api"`
	MarketingCloud AppMarketingCloud `mapstructure:"marketing_cloud"`
	JWKSProxy      AppJWKSProxy      `mapstructure:"jwks_proxy"`
}

type App struct {
	Env     string `mapstructure:"env"`
	Port    string `mapstructure:"port"`
	Version string `mapstructure:"version"`
	// Origin is the storefront's externally visible origin, e.g. https://www.shop.example.com.
	// The callback token validator fetches signing keys from here.
	Origin                     string `mapstructure:"origin"`
	Timezone                   string `mapstructure:"timezone"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInKilobyte int    `mapstructure:"request_body_limit_in_kilobyte"`
	CallbackRateLimitPerMinute int    `mapstructure:"callback_rate_limit_per_minute"`
	MetricsPath                string `mapstructure:"metrics_path"`
}

// AppCommerceAPI mirrors the commerceAPI.parameters block of the storefront config.
type AppCommerceAPI struct {
	OrganizationID               string `mapstructure:"organization_id"`
	ShortCode                    string `mapstructure:"short_code"`
	HTTPTimeoutInSeconds         int    `mapstructure:"http_timeout_in_seconds"`
	JWKSCacheTTLInSeconds        int    `mapstructure:"jwks_cache_ttl_in_seconds"`
	PasswordlessLoginCallbackURI string `mapstructure:"passwordless_login_callback_uri"`
	ResetPasswordCallbackURI     string `mapstructure:"reset_password_callback_uri"`
}

type AppMarketingCloud struct {
	ClientID                  string `mapstructure:"client_id"`
	ClientSecret              string `mapstructure:"client_secret"`
	Subdomain                 string `mapstructure:"subdomain"`
	PasswordlessLoginTemplate string `mapstructure:"passwordless_login_template"`
	ResetPasswordTemplate     string `mapstructure:"reset_password_template"`
	HTTPTimeoutInSeconds      int    `mapstructure:"http_timeout_in_seconds"`
	// SingleFlight collapses concurrent token refreshes into one exchange.
	SingleFlight     bool   `mapstructure:"single_flight"`
	TokenCacheDriver string `mapstructure:"token_cache_driver"`
}

type AppJWKSProxy struct {
	HTTPTimeoutInSeconds int `mapstructure:"http_timeout_in_seconds"`
	CacheTTLInHours      int `mapstructure:"cache_ttl_in_hours"`
}
