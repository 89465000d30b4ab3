package casdoorsdk

import "context"

// Organization is a tenant. Users, roles, permissions and most other
// entities are owned by one.
type Organization struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	DisplayName        string     `json:"displayName,omitempty"`
	WebsiteURL         string     `json:"websiteUrl,omitempty"`
	Favicon            string     `json:"favicon,omitempty"`
	PasswordType       string     `json:"passwordType,omitempty"`
	PasswordSalt       string     `json:"passwordSalt,omitempty"`
	PasswordOptions    []string   `json:"passwordOptions,omitempty"`
	CountryCodes       []string   `json:"countryCodes,omitempty"`
	DefaultAvatar      string     `json:"defaultAvatar,omitempty"`
	DefaultApplication string     `json:"defaultApplication,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	Languages          []string   `json:"languages,omitempty"`
	ThemeData          *ThemeData `json:"themeData,omitempty"`
	MasterPassword     string     `json:"masterPassword,omitempty"`
	InitScore          int        `json:"initScore,omitempty"`
	EnableSoftDeletion bool       `json:"enableSoftDeletion,omitempty"`
	IsProfilePublic    bool       `json:"isProfilePublic,omitempty"`

	MfaItems     []*MfaItem     `json:"mfaItems,omitempty"`
	AccountItems []*AccountItem `json:"accountItems,omitempty"`
}

// ThemeData customizes the hosted pages of an organization or application.
type ThemeData struct {
	ThemeType    string `json:"themeType"`
	ColorPrimary string `json:"colorPrimary"`
	BorderRadius int    `json:"borderRadius"`
	IsCompact    bool   `json:"isCompact"`
	IsEnabled    bool   `json:"isEnabled"`
}

// MfaItem sets the MFA rule ("Optional", "Prompt", "Required") for one
// factor type.
type MfaItem struct {
	Name string `json:"name"`
	Rule string `json:"rule"`
}

// AccountItem controls visibility and editability of one profile field.
type AccountItem struct {
	Name       string `json:"name"`
	Visible    bool   `json:"visible"`
	ViewRule   string `json:"viewRule"`
	ModifyRule string `json:"modifyRule"`
}

func (o *Organization) ident() (string, string) { return o.Owner, o.Name }
func (o *Organization) setOwner(owner string) { o.Owner = owner }

var organizationDescriptor = descriptor{kind: "organization", plural: "organizations"}

func (c *Client) organizations() collection[Organization, *Organization] {
	return newCollection[Organization](c, organizationDescriptor)
}

// GetOrganizations lists organizations visible to the configured one.
func (c *Client) GetOrganizations(ctx context.Context) ([]Organization, error) {
	return c.organizations().list(ctx, nil)
}

func (c *Client) GetOrganization(ctx context.Context, name string) (*Organization, error) {
	return c.organizations().get(ctx, name)
}

func (c *Client) AddOrganization(ctx context.Context, org *Organization) (bool, error) {
	return c.organizations().add(ctx, org)
}

func (c *Client) UpdateOrganization(ctx context.Context, org *Organization) (bool, error) {
	return c.organizations().update(ctx, org)
}

func (c *Client) DeleteOrganization(ctx context.Context, org *Organization) (bool, error) {
	return c.organizations().delete(ctx, org)
}
