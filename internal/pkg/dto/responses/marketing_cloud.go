package responses

type MarketingCloudToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	Scope       string `json:"scope,omitempty"`
	RestURL     string `json:"rest_instance_url,omitempty"`
}
