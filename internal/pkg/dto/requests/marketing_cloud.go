package requests

type MarketingCloudTokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type MarketingCloudSendEmailRequest struct {
	DefinitionKey string                  `json:"definitionKey"`
	Recipient     MarketingCloudRecipient `json:"recipient"`
}

type MarketingCloudRecipient struct {
	ContactKey string            `json:"contactKey"`
	To         string            `json:"to"`
	Attributes map[string]string `json:"attributes"`
}
