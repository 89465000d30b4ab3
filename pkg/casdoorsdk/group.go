package casdoorsdk

import (
	"context"
	"net/url"
)

// Group is a node in an organization's group hierarchy.
type Group struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	UpdatedTime string `json:"updatedTime,omitempty"`

	DisplayName  string  `json:"displayName,omitempty"`
	Manager      string  `json:"manager,omitempty"`
	ContactEmail string  `json:"contactEmail,omitempty"`
	Type         string  `json:"type,omitempty"`
	ParentID     string  `json:"parentId,omitempty"`
	IsTopGroup   bool    `json:"isTopGroup,omitempty"`
	Users        []*User `json:"users,omitempty"`

	Title    string   `json:"title,omitempty"`
	Key      string   `json:"key,omitempty"`
	Children []*Group `json:"children,omitempty"`

	IsEnabled bool `json:"isEnabled"`
}

func (g *Group) ident() (string, string) { return g.Owner, g.Name }
func (g *Group) setOwner(owner string) { g.Owner = owner }

var groupDescriptor = descriptor{kind: "group", plural: "groups"}

func (c *Client) groups() collection[Group, *Group] {
	return newCollection[Group](c, groupDescriptor)
}

// GetGroups lists the organization's groups. With withTree set the service
// returns only top-level groups with their descendants in Children.
func (c *Client) GetGroups(ctx context.Context, withTree bool) ([]Group, error) {
	var extra url.Values
	if withTree {
		extra = url.Values{"withTree": {"true"}}
	}
	return c.groups().list(ctx, extra)
}

// GetGroup returns the named group, or nil if it doesn't exist.
func (c *Client) GetGroup(ctx context.Context, name string) (*Group, error) {
	return c.groups().get(ctx, name)
}

func (c *Client) AddGroup(ctx context.Context, group *Group) (bool, error) {
	return c.groups().add(ctx, group)
}

func (c *Client) UpdateGroup(ctx context.Context, group *Group) (bool, error) {
	return c.groups().update(ctx, group)
}

func (c *Client) DeleteGroup(ctx context.Context, group *Group) (bool, error) {
	return c.groups().delete(ctx, group)
}
