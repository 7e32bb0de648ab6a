package contracts

import "context"

type JWKSProxyUsecase interface {
	GetJWKS(ctx context.Context, shortCode, tenantID string) ([]byte, error)
}
