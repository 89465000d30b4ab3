package casdoorsdk

import "context"

// Pricing is the set of plans offered for an application.
type Pricing struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	Plans         []string `json:"plans,omitempty"`
	IsEnabled     bool     `json:"isEnabled"`
	TrialDuration int      `json:"trialDuration,omitempty"`
	Application   string   `json:"application,omitempty"`

	Submitter   string `json:"submitter,omitempty"`
	Approver    string `json:"approver,omitempty"`
	ApproveTime string `json:"approveTime,omitempty"`

	State string `json:"state,omitempty"`
}

func (p *Pricing) ident() (string, string) { return p.Owner, p.Name }
func (p *Pricing) setOwner(owner string) { p.Owner = owner }

var pricingDescriptor = descriptor{kind: "pricing", plural: "pricings"}

func (c *Client) pricings() collection[Pricing, *Pricing] {
	return newCollection[Pricing](c, pricingDescriptor)
}

func (c *Client) GetPricings(ctx context.Context) ([]Pricing, error) {
	return c.pricings().list(ctx, nil)
}

func (c *Client) GetPricing(ctx context.Context, name string) (*Pricing, error) {
	return c.pricings().get(ctx, name)
}

func (c *Client) AddPricing(ctx context.Context, pricing *Pricing) (bool, error) {
	return c.pricings().add(ctx, pricing)
}

func (c *Client) UpdatePricing(ctx context.Context, pricing *Pricing) (bool, error) {
	return c.pricings().update(ctx, pricing)
}

func (c *Client) DeletePricing(ctx context.Context, pricing *Pricing) (bool, error) {
	return c.pricings().delete(ctx, pricing)
}
