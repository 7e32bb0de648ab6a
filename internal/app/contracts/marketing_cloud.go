package contracts

import "context"

// MagicLinkEmailRequest is one transactional e-mail carrying a magic link.
type MagicLinkEmailRequest struct {
	// EmailID is the recipient address. It is also used as the contact key.
	EmailID string

	// TemplateID is the Marketing Cloud definition key of the e-mail template.
	TemplateID string

	// MagicLink is rendered by the template through the "magic-link" attribute.
	MagicLink string
}

// MagicLinkEmailDispatcher sends magic-link e-mails through the transactional e-mail provider.
//
// It returns the decoded provider response on success.
type MagicLinkEmailDispatcher interface {
	DispatchMagicLinkEmail(ctx context.Context, request MagicLinkEmailRequest) (map[string]interface{}, error)
}
