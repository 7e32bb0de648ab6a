package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/app/config"
	"storefront-service/internal/app/contracts"
	"storefront-service/internal/app/delivery/http/controllers"
	"storefront-service/internal/app/delivery/http/middlewares"
	"storefront-service/internal/app/delivery/http/routers"
	"storefront-service/internal/app/drivers/database"
	"storefront-service/internal/app/drivers/logger"
	"storefront-service/internal/app/services/core/jwks"
	"storefront-service/internal/app/services/core/magiclink"
	"storefront-service/internal/app/services/shared/marketingcloud"
	"storefront-service/internal/app/services/shared/redis"
	"storefront-service/internal/app/services/shared/slas"
	"storefront-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig

	// Redis
	var redisRepository contracts.RedisRepository
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig)

	// SLAS callback token validator
	slasHTTPClient := &http.Client{Timeout: time.Duration(internalConfig.CommerceAPI.HTTPTimeoutInSeconds) * time.Second}
	tokenValidator := slas.NewValidator(slas.Config{
		AppOrigin:      internalConfig.App.Origin,
		ShortCode:      internalConfig.CommerceAPI.ShortCode,
		OrganizationID: internalConfig.CommerceAPI.OrganizationID,
		KeySourceTTL:   time.Duration(internalConfig.CommerceAPI.JWKSCacheTTLInSeconds) * time.Second,
	}, slasHTTPClient, bootstrap.Logger)

	// Marketing Cloud
	marketingCloudOptions := []marketingcloud.Option{
		marketingcloud.WithHTTPClient(&http.Client{
			Timeout: time.Duration(internalConfig.MarketingCloud.HTTPTimeoutInSeconds) * time.Second,
		}),
	}
	if internalConfig.MarketingCloud.TokenCacheDriver == constvars.TokenCacheDriverRedis {
		if redisRepository == nil {
			bootstrap.Logger.Warn("MARKETING_CLOUD_TOKEN_CACHE_DRIVER is redis but Redis is disabled, using memory")
		} else {
			marketingCloudOptions = append(marketingCloudOptions, marketingcloud.WithTokenCache(marketingcloud.NewRedisTokenCache(redisRepository)))
		}
	}
	if internalConfig.MarketingCloud.SingleFlight {
		marketingCloudOptions = append(marketingCloudOptions, marketingcloud.WithSingleFlight())
	}
	dispatcher := marketingcloud.NewClient(marketingcloud.Config{
		ClientID:     internalConfig.MarketingCloud.ClientID,
		ClientSecret: internalConfig.MarketingCloud.ClientSecret,
		Subdomain:    internalConfig.MarketingCloud.Subdomain,
	}, bootstrap.Logger, marketingCloudOptions...)

	// Magic link callbacks
	magicLinkUsecase := magiclink.NewMagicLinkUsecase(tokenValidator, dispatcher, magiclink.Templates{
		PasswordlessLogin: internalConfig.MarketingCloud.PasswordlessLoginTemplate,
		ResetPassword:     internalConfig.MarketingCloud.ResetPasswordTemplate,
	}, bootstrap.Logger)
	magicLinkController := controllers.NewMagicLinkController(bootstrap.Logger, magicLinkUsecase)

	// JWKS proxy
	jwksUsecase := jwks.NewJWKSUsecase(
		redisRepository,
		&http.Client{Timeout: time.Duration(internalConfig.JWKSProxy.HTTPTimeoutInSeconds) * time.Second},
		time.Duration(internalConfig.JWKSProxy.CacheTTLInHours)*time.Hour,
		bootstrap.Logger,
	)
	jwksController := controllers.NewJWKSController(bootstrap.Logger, jwksUsecase)

	healthController := controllers.NewHealthController(bootstrap.Logger, bootstrap.Redis, internalConfig)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares, magicLinkController, jwksController, healthController)
}
