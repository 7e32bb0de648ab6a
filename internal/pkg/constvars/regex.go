package constvars

const (
	// RegexSlasTenantID matches the instance suffix of an organization id, e.g. aaaa_001 or zzrf_stg.
	RegexSlasTenantID  = `^[a-zA-Z]{4}_([0-9]{3}|s[0-9]{2}|stg|dev|prd)$`
	RegexSlasShortCode = `^[a-zA-Z0-9-]+$`
)
