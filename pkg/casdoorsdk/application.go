package casdoorsdk

import "context"

// Application is an OAuth client registered with Casdoor. Applications are
// owned by "admin" rather than by an organization, so every call here
// addresses them as "admin/{name}".
type Application struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	DisplayName         string          `json:"displayName,omitempty"`
	Logo                string          `json:"logo,omitempty"`
	HomepageURL         string          `json:"homepageUrl,omitempty"`
	Description         string          `json:"description,omitempty"`
	Organization        string          `json:"organization,omitempty"`
	Cert                string          `json:"cert,omitempty"`
	EnablePassword      bool            `json:"enablePassword,omitempty"`
	EnableSignUp        bool            `json:"enableSignUp,omitempty"`
	EnableSigninSession bool            `json:"enableSigninSession,omitempty"`
	EnableCodeSignin    bool            `json:"enableCodeSignin,omitempty"`
	EnableAutoSignin    bool            `json:"enableAutoSignin,omitempty"`
	EnableSamlCompress  bool            `json:"enableSamlCompress,omitempty"`
	EnableWebAuthn      bool            `json:"enableWebAuthn,omitempty"`
	EnableLinkWithEmail bool            `json:"enableLinkWithEmail,omitempty"`
	OrgChoiceMode       string          `json:"orgChoiceMode,omitempty"`
	SamlReplyURL        string          `json:"samlReplyUrl,omitempty"`
	Providers           []*ProviderItem `json:"providers,omitempty"`
	SignupItems         []*SignupItem   `json:"signupItems,omitempty"`
	GrantTypes          []string        `json:"grantTypes,omitempty"`
	OrganizationObj     *Organization   `json:"organizationObj,omitempty"`
	Tags                []string        `json:"tags,omitempty"`

	ClientID             string     `json:"clientId,omitempty"`
	ClientSecret         string     `json:"clientSecret,omitempty"`
	RedirectURIs         []string   `json:"redirectUris,omitempty"`
	TokenFormat          string     `json:"tokenFormat,omitempty"`
	TokenFields          []string   `json:"tokenFields,omitempty"`
	ExpireInHours        int        `json:"expireInHours,omitempty"`
	RefreshExpireInHours int        `json:"refreshExpireInHours,omitempty"`
	SignupURL            string     `json:"signupUrl,omitempty"`
	SigninURL            string     `json:"signinUrl,omitempty"`
	ForgetURL            string     `json:"forgetUrl,omitempty"`
	AffiliationURL       string     `json:"affiliationUrl,omitempty"`
	TermsOfUse           string     `json:"termsOfUse,omitempty"`
	SignupHTML           string     `json:"signupHtml,omitempty"`
	SigninHTML           string     `json:"signinHtml,omitempty"`
	ThemeData            *ThemeData `json:"themeData,omitempty"`
}

// ProviderItem attaches a provider to an application.
type ProviderItem struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`

	CanSignUp bool      `json:"canSignUp"`
	CanSignIn bool      `json:"canSignIn"`
	CanUnlink bool      `json:"canUnlink"`
	Prompted  bool      `json:"prompted"`
	AlertType string    `json:"alertType,omitempty"`
	Rule      string    `json:"rule,omitempty"`
	Provider  *Provider `json:"provider,omitempty"`
}

// SignupItem configures one field of the hosted signup form.
type SignupItem struct {
	Name     string `json:"name"`
	Visible  bool   `json:"visible"`
	Required bool   `json:"required"`
	Prompted bool   `json:"prompted"`
	Rule     string `json:"rule,omitempty"`
}

func (a *Application) ident() (string, string) { return a.Owner, a.Name }
func (a *Application) setOwner(owner string) { a.Owner = owner }

var applicationDescriptor = descriptor{kind: "application", plural: "applications", scope: scopeAdmin}

func (c *Client) applications() collection[Application, *Application] {
	return newCollection[Application](c, applicationDescriptor)
}

// GetApplications lists the applications owned by "admin".
func (c *Client) GetApplications(ctx context.Context) ([]Application, error) {
	return c.applications().list(ctx, nil)
}

// GetApplication returns "admin/{name}", or nil if it doesn't exist.
func (c *Client) GetApplication(ctx context.Context, name string) (*Application, error) {
	return c.applications().get(ctx, name)
}

// AddApplication creates app with owner "admin".
func (c *Client) AddApplication(ctx context.Context, app *Application) (bool, error) {
	return c.applications().add(ctx, app)
}

func (c *Client) UpdateApplication(ctx context.Context, app *Application) (bool, error) {
	return c.applications().update(ctx, app)
}

func (c *Client) DeleteApplication(ctx context.Context, app *Application) (bool, error) {
	return c.applications().delete(ctx, app)
}
