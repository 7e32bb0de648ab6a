package contracts

import (
	"context"

	"storefront-service/internal/pkg/dto/requests"
)

// MagicLinkUsecase handles the SLAS passwordless-login and reset-password callbacks.
type MagicLinkUsecase interface {
	HandlePasswordlessLoginCallback(ctx context.Context, callbackToken string, request *requests.SlasCallback) (map[string]interface{}, error)
	HandleResetPasswordCallback(ctx context.Context, callbackToken string, request *requests.SlasCallback) (map[string]interface{}, error)
}
