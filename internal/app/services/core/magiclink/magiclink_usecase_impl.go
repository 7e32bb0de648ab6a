package magiclink

import (
	"context"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/app/services/shared/metrics"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/dto/requests"
	"storefront-service/internal/pkg/exceptions"
	"storefront-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type Templates struct {
	PasswordlessLogin string
	ResetPassword     string
}

type magicLinkUsecase struct {
	TokenValidator contracts.CallbackTokenValidator
	Dispatcher     contracts.MagicLinkEmailDispatcher
	Templates      Templates
	Log            *zap.Logger
}

func NewMagicLinkUsecase(
	tokenValidator contracts.CallbackTokenValidator,
	dispatcher contracts.MagicLinkEmailDispatcher,
	templates Templates,
	logger *zap.Logger,
) contracts.MagicLinkUsecase {
	return &magicLinkUsecase{
		TokenValidator: tokenValidator,
		Dispatcher:     dispatcher,
		Templates:      templates,
		Log:            logger,
	}
}

func (uc *magicLinkUsecase) HandlePasswordlessLoginCallback(ctx context.Context, callbackToken string, request *requests.SlasCallback) (map[string]interface{}, error) {
	link := PasswordlessLoginLink(request.Origin, request.Token, request.RedirectURL)
	return uc.handle(ctx, constvars.CallbackKindPasswordlessLogin, uc.Templates.PasswordlessLogin, callbackToken, request, link)
}

func (uc *magicLinkUsecase) HandleResetPasswordCallback(ctx context.Context, callbackToken string, request *requests.SlasCallback) (map[string]interface{}, error) {
	link := ResetPasswordLink(request.Origin, request.Token, request.EmailID)
	return uc.handle(ctx, constvars.CallbackKindResetPassword, uc.Templates.ResetPassword, callbackToken, request, link)
}

// handle validates the SLAS callback token before anything is sent. No e-mail leaves the
// service for a request SLAS did not sign.
func (uc *magicLinkUsecase) handle(ctx context.Context, kind, templateID, callbackToken string, request *requests.SlasCallback, link string) (map[string]interface{}, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("magicLinkUsecase.handle called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallbackKindKey, kind),
	)

	if callbackToken == "" {
		uc.Log.Error("magicLinkUsecase.handle missing callback token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrSlasTokenMissing()
	}

	_, err := uc.TokenValidator.ValidateCallbackToken(ctx, callbackToken)
	if err != nil {
		utils.LogSecurityEvent(uc.Log, "slas_callback_token_rejected", requestID, "medium",
			zap.String(constvars.LoggingCallbackKindKey, kind),
			zap.Error(err),
		)
		return nil, err
	}

	if templateID == "" {
		return nil, exceptions.ErrMagicLinkTemplateMissing(kind)
	}

	response, err := uc.Dispatcher.DispatchMagicLinkEmail(ctx, contracts.MagicLinkEmailRequest{
		EmailID:    request.EmailID,
		TemplateID: templateID,
		MagicLink:  link,
	})
	metrics.MagicLinkDispatches.WithLabelValues(kind, metrics.Result(err)).Inc()
	if err != nil {
		uc.Log.Error("magicLinkUsecase.handle error dispatching email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateIDKey, templateID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMagicLinkDispatch(err)
	}

	uc.Log.Info("magicLinkUsecase.handle succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCallbackKindKey, kind),
	)
	return response, nil
}
