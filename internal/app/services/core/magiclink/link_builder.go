package magiclink

import (
	"net/url"

	"storefront-service/internal/pkg/constvars"
)

// PasswordlessLoginLink points the shopper at the passwordless landing page. redirectURL is
// appended only when the storefront asked for one.
func PasswordlessLoginLink(origin, token, redirectURL string) string {
	link := origin + constvars.PasswordlessLoginLandingPath +
		"?" + constvars.MagicLinkQueryToken + "=" + url.QueryEscape(token)
	if redirectURL != "" {
		link += "&" + constvars.MagicLinkQueryRedirectURL + "=" + url.QueryEscape(redirectURL)
	}
	return link
}

func ResetPasswordLink(origin, token, email string) string {
	return origin + constvars.ResetPasswordLandingPath +
		"?" + constvars.MagicLinkQueryToken + "=" + url.QueryEscape(token) +
		"&" + constvars.MagicLinkQueryEmail + "=" + url.QueryEscape(email)
}
