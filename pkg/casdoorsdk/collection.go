package casdoorsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ownerScope says which owner addresses an entity kind.
type ownerScope int

const (
	scopeOrganization ownerScope = iota // the configured organization
	scopeAdmin                          // the fixed "admin" owner
)

// descriptor names an entity kind and its remote actions.
type descriptor struct {
	kind   string // singular, e.g. "role"
	plural string // e.g. "roles"
	scope  ownerScope
}

func (d descriptor) listAction() string { return "get-" + d.plural }
func (d descriptor) getAction() string  { return "get-" + d.kind }
func (d descriptor) addAction() string  { return "add-" + d.kind }
func (d descriptor) updAction() string  { return "update-" + d.kind }
func (d descriptor) delAction() string  { return "delete-" + d.kind }
func (d descriptor) infoKey() string    { return d.kind + "Info" }

// owner returns the owner to address this kind with.
func (d descriptor) owner(cfg Config) string {
	if d.scope == scopeAdmin {
		return adminOwner
	}
	return cfg.OrganizationName
}

// object is implemented by pointers to entity structs.
type object[T any] interface {
	*T
	ident() (owner, name string)
	setOwner(owner string)
}

// collection implements the generic list/get/add/update/delete operations
// for one entity kind.
type collection[T any, P object[T]] struct {
	c *Client
	d descriptor
}

func newCollection[T any, P object[T]](c *Client, d descriptor) collection[T, P] {
	return collection[T, P]{c: c, d: d}
}

// list fetches every entity of the kind for the owner, in server order.
func (col collection[T, P]) list(ctx context.Context, extra url.Values) ([]T, error) {
	if err := col.c.ready(); err != nil {
		return nil, err
	}

	q := url.Values{"owner": {col.d.owner(col.c.cfg)}}
	for k, v := range extra {
		q[k] = v
	}

	var items []T
	if _, err := col.c.get(ctx, col.d.listAction(), q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// get fetches one entity by name. A missing entity yields (nil, nil).
func (col collection[T, P]) get(ctx context.Context, name string) (*T, error) {
	if err := col.c.ready(); err != nil {
		return nil, err
	}

	q := url.Values{"id": {col.d.owner(col.c.cfg) + "/" + name}}
	resp, err := col.c.call(ctx, apiRequest{method: http.MethodGet, action: col.d.getAction(), query: q})
	if err != nil {
		return nil, err
	}
	if resp.IsNull() {
		return nil, nil
	}

	var item T
	if err := resp.decodeData(&item); err != nil {
		return nil, fmt.Errorf("%s: %w", col.d.getAction(), err)
	}
	return &item, nil
}

func (col collection[T, P]) add(ctx context.Context, e P) (bool, error) {
	return col.modify(ctx, col.d.addAction(), e)
}

func (col collection[T, P]) update(ctx context.Context, e P) (bool, error) {
	return col.modify(ctx, col.d.updAction(), e)
}

func (col collection[T, P]) delete(ctx context.Context, e P) (bool, error) {
	return col.modify(ctx, col.d.delAction(), e)
}

// modify submits a copy of e with its owner normalized. The caller's value
// is never changed.
func (col collection[T, P]) modify(ctx context.Context, action string, e P) (bool, error) {
	if err := col.c.ready(); err != nil {
		return false, err
	}
	if e == nil {
		return false, fmt.Errorf("%w: %s", ErrNilEntity, col.d.kind)
	}

	normalized := normalizeOwner[T, P](e, col.d.owner(col.c.cfg))
	owner, name := P(&normalized).ident()

	payload, err := col.c.encodeEntity(col.d, &normalized)
	if err != nil {
		return false, err
	}

	return col.c.mutate(ctx, action, url.Values{"id": {owner + "/" + name}}, payload)
}

// normalizeOwner returns a copy of e owned by owner.
func normalizeOwner[T any, P object[T]](e P, owner string) T {
	cp := *e
	P(&cp).setOwner(owner)
	return cp
}

// encodeEntity returns the mutation body for v according to the client's
// payload style.
func (c *Client) encodeEntity(d descriptor, v any) (any, error) {
	if c.payload != PayloadInfoWrapped {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", d.kind, err)
	}
	return map[string]string{d.infoKey(): string(raw)}, nil
}
