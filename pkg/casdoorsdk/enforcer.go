package casdoorsdk

import "context"

// Enforcer pairs a model with an adapter. Policies are stored under it.
type Enforcer struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	UpdatedTime string `json:"updatedTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	Model     string `json:"model,omitempty"`
	Adapter   string `json:"adapter,omitempty"`
	IsEnabled bool   `json:"isEnabled"`
}

func (e *Enforcer) ident() (string, string) { return e.Owner, e.Name }
func (e *Enforcer) setOwner(owner string) { e.Owner = owner }

var enforcerDescriptor = descriptor{kind: "enforcer", plural: "enforcers"}

func (c *Client) enforcers() collection[Enforcer, *Enforcer] {
	return newCollection[Enforcer](c, enforcerDescriptor)
}

func (c *Client) GetEnforcers(ctx context.Context) ([]Enforcer, error) {
	return c.enforcers().list(ctx, nil)
}

func (c *Client) GetEnforcer(ctx context.Context, name string) (*Enforcer, error) {
	return c.enforcers().get(ctx, name)
}

func (c *Client) AddEnforcer(ctx context.Context, enforcer *Enforcer) (bool, error) {
	return c.enforcers().add(ctx, enforcer)
}

func (c *Client) UpdateEnforcer(ctx context.Context, enforcer *Enforcer) (bool, error) {
	return c.enforcers().update(ctx, enforcer)
}

func (c *Client) DeleteEnforcer(ctx context.Context, enforcer *Enforcer) (bool, error) {
	return c.enforcers().delete(ctx, enforcer)
}
