package constvars

const (
	MagicLinkSentSuccessMessage = "magic link email sent"
	HealthySuccessMessage       = "service is healthy"
)

const (
	HealthStatusUp       = "up"
	HealthStatusDown     = "down"
	HealthStatusDisabled = "disabled"
)
