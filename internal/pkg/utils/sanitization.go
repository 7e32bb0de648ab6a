package utils

import (
	"storefront-service/internal/pkg/dto/requests"
	"strings"
)

// SanitizeSlasCallbackRequest trims the callback body. The e-mail keeps its case because it is
// also the Marketing Cloud contact key.
func SanitizeSlasCallbackRequest(input *requests.SlasCallback) {
	input.EmailID = strings.TrimSpace(input.EmailID)
	input.Token = strings.TrimSpace(input.Token)
	input.RedirectURL = strings.TrimSpace(input.RedirectURL)
}
