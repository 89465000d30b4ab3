package casdoorsdk

import (
	"context"
	"time"
)

// Subscription binds a user to a plan for a period.
type Subscription struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Duration    int        `json:"duration,omitempty"`
	Description string     `json:"description,omitempty"`

	User string `json:"user,omitempty"`
	Plan string `json:"plan,omitempty"`

	IsEnabled   bool   `json:"isEnabled"`
	Submitter   string `json:"submitter,omitempty"`
	Approver    string `json:"approver,omitempty"`
	ApproveTime string `json:"approveTime,omitempty"`

	State string `json:"state,omitempty"`
}

func (s *Subscription) ident() (string, string) { return s.Owner, s.Name }
func (s *Subscription) setOwner(owner string) { s.Owner = owner }

var subscriptionDescriptor = descriptor{kind: "subscription", plural: "subscriptions"}

func (c *Client) subscriptions() collection[Subscription, *Subscription] {
	return newCollection[Subscription](c, subscriptionDescriptor)
}

func (c *Client) GetSubscriptions(ctx context.Context) ([]Subscription, error) {
	return c.subscriptions().list(ctx, nil)
}

func (c *Client) GetSubscription(ctx context.Context, name string) (*Subscription, error) {
	return c.subscriptions().get(ctx, name)
}

func (c *Client) AddSubscription(ctx context.Context, sub *Subscription) (bool, error) {
	return c.subscriptions().add(ctx, sub)
}

func (c *Client) UpdateSubscription(ctx context.Context, sub *Subscription) (bool, error) {
	return c.subscriptions().update(ctx, sub)
}

func (c *Client) DeleteSubscription(ctx context.Context, sub *Subscription) (bool, error) {
	return c.subscriptions().delete(ctx, sub)
}
