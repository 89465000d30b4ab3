package casdoorsdk

import "context"

// Adapter is a casbin policy storage backend.
type Adapter struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	Type            string `json:"type,omitempty"`
	DatabaseType    string `json:"databaseType,omitempty"`
	Host            string `json:"host,omitempty"`
	Port            int    `json:"port,omitempty"`
	User            string `json:"user,omitempty"`
	Password        string `json:"password,omitempty"`
	Database        string `json:"database,omitempty"`
	Table           string `json:"table,omitempty"`
	TableNamePrefix string `json:"tableNamePrefix,omitempty"`

	IsEnabled bool `json:"isEnabled"`
}

func (a *Adapter) ident() (string, string) { return a.Owner, a.Name }
func (a *Adapter) setOwner(owner string) { a.Owner = owner }

var adapterDescriptor = descriptor{kind: "adapter", plural: "adapters"}

func (c *Client) adapters() collection[Adapter, *Adapter] {
	return newCollection[Adapter](c, adapterDescriptor)
}

func (c *Client) GetAdapters(ctx context.Context) ([]Adapter, error) {
	return c.adapters().list(ctx, nil)
}

func (c *Client) GetAdapter(ctx context.Context, name string) (*Adapter, error) {
	return c.adapters().get(ctx, name)
}

func (c *Client) AddAdapter(ctx context.Context, adapter *Adapter) (bool, error) {
	return c.adapters().add(ctx, adapter)
}

func (c *Client) UpdateAdapter(ctx context.Context, adapter *Adapter) (bool, error) {
	return c.adapters().update(ctx, adapter)
}

func (c *Client) DeleteAdapter(ctx context.Context, adapter *Adapter) (bool, error) {
	return c.adapters().delete(ctx, adapter)
}
