package casdoorsdk

import (
	"context"
	"fmt"
	"net/url"
)

// CasbinRequest is one request tuple, usually subject, object and action.
type CasbinRequest []string

// EnforceTarget selects what a request is enforced against. Every id is
// "{owner}/{name}"; empty ids are sent empty and ignored by the service.
type EnforceTarget struct {
	PermissionID string
	ModelID      string
	ResourceID   string
	EnforcerID   string

	// Owner, when set, scopes enforcement to the owner's permissions.
	Owner string
}

func (t EnforceTarget) values() url.Values {
	q := url.Values{
		"permissionId": {t.PermissionID},
		"modelId":      {t.ModelID},
		"resourceId":   {t.ResourceID},
		"enforcerId":   {t.EnforcerID},
	}
	if t.Owner != "" {
		q.Set("owner", t.Owner)
	}
	return q
}

// Enforce evaluates req. The service answers with one decision per matched
// policy set; the request is allowed if any of them is.
func (c *Client) Enforce(ctx context.Context, target EnforceTarget, req CasbinRequest) (bool, error) {
	var decisions []bool
	if err := c.enforce(ctx, "enforce", target, req, &decisions); err != nil {
		return false, err
	}
	for _, ok := range decisions {
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// BatchEnforce evaluates reqs in one call. The result has one group of
// decisions per matched policy set, in service order.
func (c *Client) BatchEnforce(ctx context.Context, target EnforceTarget, reqs []CasbinRequest) ([][]bool, error) {
	var groups [][]bool
	if err := c.enforce(ctx, "batch-enforce", target, reqs, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// BatchEnforceFlat is BatchEnforce with the groups concatenated.
func (c *Client) BatchEnforceFlat(ctx context.Context, target EnforceTarget, reqs []CasbinRequest) ([]bool, error) {
	groups, err := c.BatchEnforce(ctx, target, reqs)
	if err != nil {
		return nil, err
	}

	n := 0
	for _, g := range groups {
		n += len(g)
	}
	flat := make([]bool, 0, n)
	for _, g := range groups {
		flat = append(flat, g...)
	}
	return flat, nil
}

func (c *Client) enforce(ctx context.Context, action string, target EnforceTarget, payload, out any) error {
	if err := c.ready(); err != nil {
		return err
	}
	resp, err := c.postJSON(ctx, action, target.values(), payload)
	if err != nil {
		return err
	}
	if err := resp.decodeData(out); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}
