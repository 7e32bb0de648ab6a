package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"alphanum": "must contain only alphanumeric characters",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"url":      "must be a valid URL",
	"oneof":    "must be one of [%s]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientInvalidJWKSParams             = "Bad request parameters: Tenant ID or short code is invalid."
	ErrClientJWKSFetchFormat               = "Error while fetching data: %s"
	ErrClientMagicLinkNotSent              = "failed to send the magic link email"
	ErrClientRequestBodyTooLarge           = "request body is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotParseForm        = "cannot parse form body"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevReadBody               = "cannot read request body"
	ErrDevRequestBodyTooLarge    = "request body exceeds the configured limit"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"

	ErrDevRedisGetNoData  = "no data found in redis for key: %s"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"

	ErrDevSlasTokenMissing      = "SLAS callback token header is missing"
	ErrDevSlasJWKSParamsInvalid = "tenant id or short code failed pattern validation"
	ErrDevSlasJWKSFetch         = "failed to fetch JWKS from commerce API"

	ErrDevMarketingCloudDispatch = "failed to dispatch magic link email through marketing cloud"
	ErrDevMarketingCloudTemplate = "marketing cloud template for %s callback is not configured"
)
