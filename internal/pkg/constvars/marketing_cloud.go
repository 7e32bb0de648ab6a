package constvars

import "time"

const (
	MarketingCloudTokenURLFormat  = "https://%s.auth.marketingcloudapis.com/v2/token"
	MarketingCloudSendURLFormat   = "https://%s.rest.marketingcloudapis.com/messaging/v1/email/messages/%s"
	MarketingCloudGrantType       = "client_credentials"
	MarketingCloudMagicLinkAttr   = "magic-link"
	MarketingCloudMessageKeyBytes = 16
	MarketingCloudRedisSessionKey = "MARKETING_CLOUD:SESSION"
	MarketingCloudSingleFlightKey = "marketing-cloud-token"
	MarketingCloudEnvClientID     = "MARKETING_CLOUD_CLIENT_ID"
	MarketingCloudEnvClientSecret = "MARKETING_CLOUD_CLIENT_SECRET"
	MarketingCloudEnvSubdomain    = "MARKETING_CLOUD_SUBDOMAIN"
)

// Provider tokens live 20 minutes; refreshing at 15 leaves headroom.
const MarketingCloudTokenLifetime = 15 * time.Minute

const (
	TokenCacheDriverMemory = "memory"
	TokenCacheDriverRedis  = "redis"
)
