package casdoorsdk

import "context"

// Webhook posts organization events to an external URL.
type Webhook struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	Organization string `json:"organization,omitempty"`

	URL            string    `json:"url,omitempty"`
	Method         string    `json:"method,omitempty"`
	ContentType    string    `json:"contentType,omitempty"`
	Headers        []*Header `json:"headers,omitempty"`
	Events         []string  `json:"events,omitempty"`
	IsUserExtended bool      `json:"isUserExtended,omitempty"`
	SingleOrgOnly  bool      `json:"singleOrgOnly,omitempty"`
	IsEnabled      bool      `json:"isEnabled"`
}

// Header is an extra HTTP header sent with each webhook call.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (w *Webhook) ident() (string, string) { return w.Owner, w.Name }
func (w *Webhook) setOwner(owner string) { w.Owner = owner }

var webhookDescriptor = descriptor{kind: "webhook", plural: "webhooks"}

func (c *Client) webhooks() collection[Webhook, *Webhook] {
	return newCollection[Webhook](c, webhookDescriptor)
}

func (c *Client) GetWebhooks(ctx context.Context) ([]Webhook, error) {
	return c.webhooks().list(ctx, nil)
}

func (c *Client) GetWebhook(ctx context.Context, name string) (*Webhook, error) {
	return c.webhooks().get(ctx, name)
}

func (c *Client) AddWebhook(ctx context.Context, webhook *Webhook) (bool, error) {
	return c.webhooks().add(ctx, webhook)
}

func (c *Client) UpdateWebhook(ctx context.Context, webhook *Webhook) (bool, error) {
	return c.webhooks().update(ctx, webhook)
}

func (c *Client) DeleteWebhook(ctx context.Context, webhook *Webhook) (bool, error) {
	return c.webhooks().delete(ctx, webhook)
}
