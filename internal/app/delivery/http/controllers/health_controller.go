package controllers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/internal/app/config"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/dto/responses"
	"storefront-service/internal/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type HealthController struct {
	Log            *zap.Logger
	Redis          *redis.Client
	InternalConfig *config.InternalConfig
}

func NewHealthController(logger *zap.Logger, redisClient *redis.Client, internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{
		Log:            logger,
		Redis:          redisClient,
		InternalConfig: internalConfig,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	health := responses.HealthDTO{
		Status:  constvars.HealthStatusUp,
		Version: ctrl.InternalConfig.App.Version,
		Redis:   constvars.HealthStatusDisabled,
	}

	code := constvars.StatusOK
	if ctrl.Redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		health.Redis = constvars.HealthStatusUp
		err := ctrl.Redis.Ping(ctx).Err()
		if err != nil {
			ctrl.Log.Warn("HealthController.Health redis ping failed", zap.Error(err))
			health.Status = constvars.HealthStatusDown
			health.Redis = constvars.HealthStatusDown
			code = constvars.StatusServiceUnavailable
		}
	}

	utils.BuildSuccessResponse(w, code, constvars.HealthySuccessMessage, health)
}
