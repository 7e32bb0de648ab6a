package controllers

import (
	"net/http"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type JWKSController struct {
	Log         *zap.Logger
	JWKSUsecase contracts.JWKSProxyUsecase
}

func NewJWKSController(logger *zap.Logger, jwksUsecase contracts.JWKSProxyUsecase) *JWKSController {
	return &JWKSController{
		Log:         logger,
		JWKSUsecase: jwksUsecase,
	}
}

func (ctrl *JWKSController) GetJWKS(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")
	tenantID := chi.URLParam(r, "tenantId")

	body, err := ctrl.JWKSUsecase.GetJWKS(r.Context(), shortCode, tenantID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	w.Header().Set(constvars.HeaderCacheControl, constvars.JWKSProxyCacheControl)
	utils.BuildRawJSONResponse(w, constvars.StatusOK, body)
}
