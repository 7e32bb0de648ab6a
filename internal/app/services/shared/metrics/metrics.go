package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultCached  = "cached"
)

var (
	CallbackTokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_callback_token_validations_total",
		Help: "SLAS callback token validations by result",
	}, []string{"result"})

	MagicLinkDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_magic_link_dispatches_total",
		Help: "Magic link e-mails handed to Marketing Cloud by callback kind and result",
	}, []string{"callback_kind", "result"})

	MarketingCloudTokenExchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_marketing_cloud_token_exchanges_total",
		Help: "Client-credentials exchanges against Marketing Cloud by result",
	}, []string{"result"})

	JWKSProxyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_jwks_proxy_requests_total",
		Help: "JWKS proxy requests by result",
	}, []string{"result"})

	OutboundRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_outbound_request_duration_seconds",
		Help:    "Latency of calls to SLAS and Marketing Cloud",
		Buckets: prometheus.ExponentialBuckets(0.01, 2.0, 10), // 10ms to ~5s
	}, []string{"target"})
)

const (
	TargetSlasJWKS           = "slas_jwks"
	TargetCommerceJWKS       = "commerce_jwks"
	TargetMarketingCloudAuth = "marketing_cloud_auth"
	TargetMarketingCloudSend = "marketing_cloud_send"
)

func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
