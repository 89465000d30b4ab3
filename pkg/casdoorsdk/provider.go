package casdoorsdk

import "context"

// Provider configures an external integration: OAuth, email, SMS, storage,
// payment, captcha and so on. Which fields matter depends on Category and
// Type.
type Provider struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	DisplayName       string            `json:"displayName,omitempty"`
	Category          string            `json:"category,omitempty"`
	Type              string            `json:"type,omitempty"`
	SubType           string            `json:"subType,omitempty"`
	Method            string            `json:"method,omitempty"`
	ClientID          string            `json:"clientId,omitempty"`
	ClientSecret      string            `json:"clientSecret,omitempty"`
	ClientID2         string            `json:"clientId2,omitempty"`
	ClientSecret2     string            `json:"clientSecret2,omitempty"`
	Cert              string            `json:"cert,omitempty"`
	CustomAuthURL     string            `json:"customAuthUrl,omitempty"`
	CustomTokenURL    string            `json:"customTokenUrl,omitempty"`
	CustomUserInfoURL string            `json:"customUserInfoUrl,omitempty"`
	CustomLogo        string            `json:"customLogo,omitempty"`
	Scopes            string            `json:"scopes,omitempty"`
	UserMapping       map[string]string `json:"userMapping,omitempty"`

	Host       string `json:"host,omitempty"`
	Port       int    `json:"port,omitempty"`
	DisableSsl bool   `json:"disableSsl,omitempty"` // enables the QR code for WeChat
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"` // base64 QR code for WeChat
	Receiver   string `json:"receiver,omitempty"`

	RegionID     string `json:"regionId,omitempty"`
	SignName     string `json:"signName,omitempty"`
	TemplateCode string `json:"templateCode,omitempty"`
	AppID        string `json:"appId,omitempty"`

	Endpoint         string `json:"endpoint,omitempty"`
	IntranetEndpoint string `json:"intranetEndpoint,omitempty"`
	Domain           string `json:"domain,omitempty"`
	Bucket           string `json:"bucket,omitempty"`
	PathPrefix       string `json:"pathPrefix,omitempty"`

	Metadata               string `json:"metadata,omitempty"`
	IdP                    string `json:"idP,omitempty"`
	IssuerURL              string `json:"issuerUrl,omitempty"`
	EnableSignAuthnRequest bool   `json:"enableSignAuthnRequest,omitempty"`

	ProviderURL string `json:"providerUrl,omitempty"`
}

func (p *Provider) ident() (string, string) { return p.Owner, p.Name }
func (p *Provider) setOwner(owner string) { p.Owner = owner }

var providerDescriptor = descriptor{kind: "provider", plural: "providers"}

func (c *Client) providers() collection[Provider, *Provider] {
	return newCollection[Provider](c, providerDescriptor)
}

// GetProviders lists the organization's providers.
func (c *Client) GetProviders(ctx context.Context) ([]Provider, error) {
	return c.providers().list(ctx, nil)
}

// GetProvider returns the named provider, or nil if it doesn't exist.
func (c *Client) GetProvider(ctx context.Context, name string) (*Provider, error) {
	return c.providers().get(ctx, name)
}

func (c *Client) AddProvider(ctx context.Context, provider *Provider) (bool, error) {
	return c.providers().add(ctx, provider)
}

func (c *Client) UpdateProvider(ctx context.Context, provider *Provider) (bool, error) {
	return c.providers().update(ctx, provider)
}

func (c *Client) DeleteProvider(ctx context.Context, provider *Provider) (bool, error) {
	return c.providers().delete(ctx, provider)
}
