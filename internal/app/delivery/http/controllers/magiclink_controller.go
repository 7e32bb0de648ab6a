package controllers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"storefront-service/internal/app/contracts"
	"storefront-service/internal/pkg/constvars"
	"storefront-service/internal/pkg/dto/requests"
	"storefront-service/internal/pkg/exceptions"
	"storefront-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const callbackTimeout = 15 * time.Second

type MagicLinkController struct {
	Log              *zap.Logger
	MagicLinkUsecase contracts.MagicLinkUsecase
}

func NewMagicLinkController(logger *zap.Logger, magicLinkUsecase contracts.MagicLinkUsecase) *MagicLinkController {
	return &MagicLinkController{
		Log:              logger,
		MagicLinkUsecase: magicLinkUsecase,
	}
}

type callbackHandler func(ctx context.Context, callbackToken string, request *requests.SlasCallback) (map[string]interface{}, error)

func (ctrl *MagicLinkController) PasswordlessLoginCallback(w http.ResponseWriter, r *http.Request) {
	ctrl.serveCallback(w, r, ctrl.MagicLinkUsecase.HandlePasswordlessLoginCallback)
}

func (ctrl *MagicLinkController) ResetPasswordCallback(w http.ResponseWriter, r *http.Request) {
	ctrl.serveCallback(w, r, ctrl.MagicLinkUsecase.HandleResetPasswordCallback)
}

// SlasRedirectCallback is where SLAS sends the browser after login. There is nothing to do.
func (ctrl *MagicLinkController) SlasRedirectCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(constvars.HeaderCacheControl, constvars.SlasCallbackCacheControl)
	w.WriteHeader(constvars.StatusOK)
}

func (ctrl *MagicLinkController) serveCallback(w http.ResponseWriter, r *http.Request, handle callbackHandler) {
	ctx, cancel := context.WithTimeout(r.Context(), callbackTimeout)
	defer cancel()

	request, err := parseSlasCallback(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.SanitizeSlasCallbackRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	response, err := handle(ctx, r.Header.Get(constvars.HeaderXSlasCallbackToken), request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MagicLinkSentSuccessMessage, response)
}

// parseSlasCallback accepts the callback body as JSON or as a urlencoded form.
func parseSlasCallback(r *http.Request) (*requests.SlasCallback, error) {
	request := &requests.SlasCallback{
		RedirectURL: r.URL.Query().Get(constvars.CallbackQueryRedirectURL),
		Origin:      utils.RequestOrigin(r),
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constvars.HeaderContentType))
	if mediaType == constvars.MIMEApplicationForm {
		err := r.ParseForm()
		if isBodyTooLarge(err) {
			return nil, exceptions.ErrRequestBodyTooLarge(err)
		}
		if err != nil {
			return nil, exceptions.ErrCannotParseForm(err)
		}
		request.EmailID = r.PostForm.Get("email_id")
		request.Token = r.PostForm.Get("token")
		return request, nil
	}

	body, err := io.ReadAll(r.Body)
	if isBodyTooLarge(err) {
		return nil, exceptions.ErrRequestBodyTooLarge(err)
	}
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}

	err = json.Unmarshal(body, request)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return request, nil
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
