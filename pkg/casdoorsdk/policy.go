package casdoorsdk

import (
	"context"
	"net/url"
)

// Policy is one casbin rule row. Field names follow the casbin adapter
// table, hence the capitalized JSON keys.
type Policy struct {
	ID        int    `json:"Id"`
	Ptype     string `json:"Ptype"`
	V0        string `json:"V0"`
	V1        string `json:"V1"`
	V2        string `json:"V2"`
	V3        string `json:"V3,omitempty"`
	V4        string `json:"V4,omitempty"`
	V5        string `json:"V5,omitempty"`
	TableName string `json:"tableName,omitempty"`
}

func (c *Client) enforcerQuery(enforcerName string) url.Values {
	return url.Values{"id": {c.cfg.OrganizationName + "/" + enforcerName}}
}

// GetPolicies lists the rules of the named enforcer. adapterID selects a
// specific adapter and may be empty.
func (c *Client) GetPolicies(ctx context.Context, enforcerName, adapterID string) ([]Policy, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	q := c.enforcerQuery(enforcerName)
	if adapterID != "" {
		q.Set("adapterId", adapterID)
	}

	var items []Policy
	if _, err := c.get(ctx, "get-policies", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddPolicy adds one rule to the named enforcer.
func (c *Client) AddPolicy(ctx context.Context, enforcerName string, policy Policy) (bool, error) {
	return c.modifyPolicy(ctx, "add-policy", enforcerName, []Policy{policy})
}

// UpdatePolicy replaces oldPolicy with newPolicy.
func (c *Client) UpdatePolicy(ctx context.Context, enforcerName string, oldPolicy, newPolicy Policy) (bool, error) {
	return c.modifyPolicy(ctx, "update-policy", enforcerName, []Policy{oldPolicy, newPolicy})
}

// RemovePolicy removes one rule from the named enforcer.
func (c *Client) RemovePolicy(ctx context.Context, enforcerName string, policy Policy) (bool, error) {
	return c.modifyPolicy(ctx, "remove-policy", enforcerName, []Policy{policy})
}

func (c *Client) modifyPolicy(ctx context.Context, action, enforcerName string, policies []Policy) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	return c.mutate(ctx, action, c.enforcerQuery(enforcerName), policies)
}
