package casdoorsdk

import "context"

// Syncer periodically imports users from an external database table.
type Syncer struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	Organization string `json:"organization,omitempty"`
	Type         string `json:"type,omitempty"`

	Host             string         `json:"host,omitempty"`
	Port             int            `json:"port,omitempty"`
	User             string         `json:"user,omitempty"`
	Password         string         `json:"password,omitempty"`
	DatabaseType     string         `json:"databaseType,omitempty"`
	Database         string         `json:"database,omitempty"`
	Table            string         `json:"table,omitempty"`
	TablePrimaryKey  string         `json:"tablePrimaryKey,omitempty"`
	TableColumns     []*TableColumn `json:"tableColumns,omitempty"`
	AffiliationTable string         `json:"affiliationTable,omitempty"`
	AvatarBaseURL    string         `json:"avatarBaseUrl,omitempty"`
	ErrorText        string         `json:"errorText,omitempty"`
	SyncInterval     int            `json:"syncInterval,omitempty"`
	IsReadOnly       bool           `json:"isReadOnly,omitempty"`
	IsEnabled        bool           `json:"isEnabled"`
}

// TableColumn maps one external column onto a user field.
type TableColumn struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	CasdoorName string   `json:"casdoorName"`
	IsKey       bool     `json:"isKey"`
	IsHashed    bool     `json:"isHashed"`
	Values      []string `json:"values,omitempty"`
}

func (s *Syncer) ident() (string, string) { return s.Owner, s.Name }
func (s *Syncer) setOwner(owner string) { s.Owner = owner }

var syncerDescriptor = descriptor{kind: "syncer", plural: "syncers"}

func (c *Client) syncers() collection[Syncer, *Syncer] {
	return newCollection[Syncer](c, syncerDescriptor)
}

func (c *Client) GetSyncers(ctx context.Context) ([]Syncer, error) {
	return c.syncers().list(ctx, nil)
}

func (c *Client) GetSyncer(ctx context.Context, name string) (*Syncer, error) {
	return c.syncers().get(ctx, name)
}

func (c *Client) AddSyncer(ctx context.Context, syncer *Syncer) (bool, error) {
	return c.syncers().add(ctx, syncer)
}

func (c *Client) UpdateSyncer(ctx context.Context, syncer *Syncer) (bool, error) {
	return c.syncers().update(ctx, syncer)
}

func (c *Client) DeleteSyncer(ctx context.Context, syncer *Syncer) (bool, error) {
	return c.syncers().delete(ctx, syncer)
}
