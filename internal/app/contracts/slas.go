package contracts

import "context"

// CallbackTokenValidator verifies the short-lived token SLAS attaches to its callback requests.
type CallbackTokenValidator interface {
	ValidateCallbackToken(ctx context.Context, token string) (map[string]interface{}, error)
}
