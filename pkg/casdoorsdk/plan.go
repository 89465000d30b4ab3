package casdoorsdk

import "context"

// Plan is a subscription tier tied to a role.
type Plan struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	PricePerMonth float64 `json:"pricePerMonth,omitempty"`
	PricePerYear  float64 `json:"pricePerYear,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	IsEnabled     bool    `json:"isEnabled"`

	Role    string   `json:"role,omitempty"`
	Options []string `json:"options,omitempty"`
}

func (p *Plan) ident() (string, string) { return p.Owner, p.Name }
func (p *Plan) setOwner(owner string) { p.Owner = owner }

var planDescriptor = descriptor{kind: "plan", plural: "plans"}

func (c *Client) plans() collection[Plan, *Plan] {
	return newCollection[Plan](c, planDescriptor)
}

func (c *Client) GetPlans(ctx context.Context) ([]Plan, error) {
	return c.plans().list(ctx, nil)
}

func (c *Client) GetPlan(ctx context.Context, name string) (*Plan, error) {
	return c.plans().get(ctx, name)
}

func (c *Client) AddPlan(ctx context.Context, plan *Plan) (bool, error) {
	return c.plans().add(ctx, plan)
}

func (c *Client) UpdatePlan(ctx context.Context, plan *Plan) (bool, error) {
	return c.plans().update(ctx, plan)
}

func (c *Client) DeletePlan(ctx context.Context, plan *Plan) (bool, error) {
	return c.plans().delete(ctx, plan)
}
