package config

import (
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Enabled:  utils.GetEnvBool("REDIS_ENABLED", false),
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "info"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":3000"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Origin:                     utils.GetEnvString("APP_ORIGIN", "http://localhost:3000"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 50),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInKilobyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_KILOBYTE", 64),
			CallbackRateLimitPerMinute: utils.GetEnvInt("APP_CALLBACK_RATE_LIMIT_PER_MINUTE", 30),
			MetricsPath:                utils.GetEnvString("APP_METRICS_PATH", "/metrics"),
		},
		CommerceAPI: AppCommerceAPI{
			OrganizationID:               utils.GetEnvString("COMMERCE_API_ORGANIZATION_ID", ""),
			ShortCode:                    utils.GetEnvString("COMMERCE_API_SHORT_CODE", ""),
			HTTPTimeoutInSeconds:         utils.GetEnvInt("COMMERCE_API_HTTP_TIMEOUT_IN_SECONDS", 10),
			JWKSCacheTTLInSeconds:        utils.GetEnvInt("SLAS_JWKS_CACHE_TTL_IN_SECONDS", 300),
			PasswordlessLoginCallbackURI: utils.GetEnvString("SLAS_PASSWORDLESS_CALLBACK_URI", constvars.DefaultPasswordlessLoginCallbackURI),
			ResetPasswordCallbackURI:     utils.GetEnvString("SLAS_RESET_PASSWORD_CALLBACK_URI", constvars.DefaultResetPasswordCallbackURI),
		},
		MarketingCloud: AppMarketingCloud{
			ClientID:                  utils.GetEnvString(constvars.MarketingCloudEnvClientID, ""),
			ClientSecret:              utils.GetEnvString(constvars.MarketingCloudEnvClientSecret, ""),
			Subdomain:                 utils.GetEnvString(constvars.MarketingCloudEnvSubdomain, ""),
			PasswordlessLoginTemplate: utils.GetEnvString("MARKETING_CLOUD_PASSWORDLESS_LOGIN_TEMPLATE", ""),
			ResetPasswordTemplate:     utils.GetEnvString("MARKETING_CLOUD_RESET_PASSWORD_TEMPLATE", ""),
			HTTPTimeoutInSeconds:      utils.GetEnvInt("MARKETING_CLOUD_HTTP_TIMEOUT_IN_SECONDS", 0),
			SingleFlight:              utils.GetEnvBool("MARKETING_CLOUD_SINGLE_FLIGHT", false),
			TokenCacheDriver:          utils.GetEnvString("MARKETING_CLOUD_TOKEN_CACHE_DRIVER", constvars.TokenCacheDriverMemory),
		},
		JWKSProxy: AppJWKSProxy{
			HTTPTimeoutInSeconds: utils.GetEnvInt("JWKS_PROXY_HTTP_TIMEOUT_IN_SECONDS", 10),
			CacheTTLInHours:      utils.GetEnvInt("JWKS_PROXY_CACHE_TTL_IN_HOURS", 24),
		},
	}
}
