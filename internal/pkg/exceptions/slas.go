package exceptions

import (
	"fmt"
	"storefront-service/internal/pkg/constvars"
)

// ErrSlasTokenValidation is the single failure shape of callback token validation.
// It always carries 401, whatever went wrong underneath.
func ErrSlasTokenValidation(err error) *CustomError {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return &CustomError{
		StatusCode:    constvars.StatusUnauthorized,
		ClientMessage: constvars.ErrClientNotAuthorized,
		DevMessage:    constvars.SlasTokenValidationErrPrefix + message,
		Locations:     []Location{getLocation(2)},
		cause:         err,
	}
}

func ErrSlasTokenMissing() *CustomError {
	return WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevSlasTokenMissing)
}

func ErrJWKSInvalidParams() *CustomError {
	return WrapWithoutError(constvars.StatusBadRequest, constvars.ErrClientInvalidJWKSParams, constvars.ErrDevSlasJWKSParamsInvalid)
}

func ErrJWKSFetch(err error) *CustomError {
	return BuildNewCustomError(err, constvars.StatusBadRequest, fmt.Sprintf(constvars.ErrClientJWKSFetchFormat, err.Error()), constvars.ErrDevSlasJWKSFetch)
}

func ErrMagicLinkDispatch(err error) *CustomError {
	return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientMagicLinkNotSent, constvars.ErrDevMarketingCloudDispatch)
}

func ErrMagicLinkTemplateMissing(kind string) *CustomError {
	return WrapWithoutError(constvars.StatusInternalServerError, constvars.ErrClientMagicLinkNotSent, fmt.Sprintf(constvars.ErrDevMarketingCloudTemplate, kind))
}
