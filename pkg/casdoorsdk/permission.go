package casdoorsdk

import "context"

// Permission grants actions on resources to users, groups and roles.
type Permission struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	Users   []string `json:"users,omitempty"`
	Groups  []string `json:"groups,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	Domains []string `json:"domains,omitempty"`

	Model        string   `json:"model,omitempty"`
	Adapter      string   `json:"adapter,omitempty"`
	ResourceType string   `json:"resourceType,omitempty"`
	Resources    []string `json:"resources,omitempty"`
	Actions      []string `json:"actions,omitempty"`
	Effect       string   `json:"effect,omitempty"`
	IsEnabled    bool     `json:"isEnabled"`

	Submitter   string `json:"submitter,omitempty"`
	Approver    string `json:"approver,omitempty"`
	ApproveTime string `json:"approveTime,omitempty"`
	State       string `json:"state,omitempty"`
}

func (p *Permission) ident() (string, string) { return p.Owner, p.Name }
func (p *Permission) setOwner(owner string) { p.Owner = owner }

var permissionDescriptor = descriptor{kind: "permission", plural: "permissions"}

func (c *Client) permissions() collection[Permission, *Permission] {
	return newCollection[Permission](c, permissionDescriptor)
}

// GetPermissions lists the organization's permissions.
func (c *Client) GetPermissions(ctx context.Context) ([]Permission, error) {
	return c.permissions().list(ctx, nil)
}

// GetPermission returns the named permission, or nil if it doesn't exist.
func (c *Client) GetPermission(ctx context.Context, name string) (*Permission, error) {
	return c.permissions().get(ctx, name)
}

func (c *Client) AddPermission(ctx context.Context, permission *Permission) (bool, error) {
	return c.permissions().add(ctx, permission)
}

func (c *Client) UpdatePermission(ctx context.Context, permission *Permission) (bool, error) {
	return c.permissions().update(ctx, permission)
}

func (c *Client) DeletePermission(ctx context.Context, permission *Permission) (bool, error) {
	return c.permissions().delete(ctx, permission)
}
