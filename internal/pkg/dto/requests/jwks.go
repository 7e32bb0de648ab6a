package requests

type JWKSProxyParams struct {
	ShortCode string `json:"short_code" validate:"required,slas_short_code"`
	TenantID  string `json:"tenant_id" validate:"required,slas_tenant_id"`
}
