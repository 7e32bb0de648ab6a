package requests

// SlasCallback is the body SLAS posts to the passwordless-login and reset-password callbacks.
type SlasCallback struct {
	EmailID string `json:"email_id" validate:"required,email"`
	Token   string `json:"token" validate:"required"`

	// RedirectURL comes from the redirectUrl query parameter, not the body.
	RedirectURL string `json:"-"`
	// Origin is scheme://host of the incoming request; magic links point back at it.
	Origin string `json:"-"`
}
