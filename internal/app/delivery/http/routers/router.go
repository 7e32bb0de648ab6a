package routers

import (
	"storefront-service/internal/app/config"
	"storefront-service/internal/app/delivery/http/controllers"
	"storefront-service/internal/app/delivery/http/middlewares"
	"storefront-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	magicLinkController *controllers.MagicLinkController,
	jwksController *controllers.JWKSController,
	healthController *controllers.HealthController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderContentType, constvars.HeaderXRequestID, constvars.HeaderXSlasCallbackToken},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.SecurityHeaders)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimiter())

	router.Get("/healthz", healthController.Health)
	router.Handle(internalConfig.App.MetricsPath, promhttp.Handler())

	router.Get("/callback", magicLinkController.SlasRedirectCallback)
	router.Get("/{shortCode}/{tenantId}/oauth2/jwks", jwksController.GetJWKS)

	router.Group(func(r chi.Router) {
		attachCallbackRoutes(r, internalConfig, middlewares, magicLinkController)
	})
}

func attachCallbackRoutes(
	router chi.Router,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	magicLinkController *controllers.MagicLinkController,
) {
	router.Use(middlewares.CallbackRateLimiter())
	router.Use(middlewares.BodyLimit)

	router.Post(internalConfig.CommerceAPI.PasswordlessLoginCallbackURI, magicLinkController.PasswordlessLoginCallback)
	router.Post(internalConfig.CommerceAPI.ResetPasswordCallbackURI, magicLinkController.ResetPasswordCallback)
}
