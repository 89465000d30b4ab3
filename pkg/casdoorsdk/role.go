package casdoorsdk

import "context"

// Role groups users (and other roles) for permission assignment.
type Role struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	Users     []string `json:"users,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Domains   []string `json:"domains,omitempty"`
	IsEnabled bool     `json:"isEnabled"`
}

func (r *Role) ident() (string, string) { return r.Owner, r.Name }
func (r *Role) setOwner(owner string) { r.Owner = owner }

var roleDescriptor = descriptor{kind: "role", plural: "roles"}

func (c *Client) roles() collection[Role, *Role] {
	return newCollection[Role](c, roleDescriptor)
}

// GetRoles lists the organization's roles.
func (c *Client) GetRoles(ctx context.Context) ([]Role, error) {
	return c.roles().list(ctx, nil)
}

// GetRole returns the named role, or nil if it doesn't exist.
func (c *Client) GetRole(ctx context.Context, name string) (*Role, error) {
	return c.roles().get(ctx, name)
}

// AddRole creates role under the configured organization. The submitted
// owner is always the organization; role itself is left unchanged.
func (c *Client) AddRole(ctx context.Context, role *Role) (bool, error) {
	return c.roles().add(ctx, role)
}

// UpdateRole replaces the stored role with role.
func (c *Client) UpdateRole(ctx context.Context, role *Role) (bool, error) {
	return c.roles().update(ctx, role)
}

// DeleteRole removes role.
func (c *Client) DeleteRole(ctx context.Context, role *Role) (bool, error) {
	return c.roles().delete(ctx, role)
}
