package casdoorsdk

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
)

// Resource is a file stored through one of the organization's storage
// providers.
type Resource struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	User         string `json:"user,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Application  string `json:"application,omitempty"`
	Tag          string `json:"tag,omitempty"`
	Parent       string `json:"parent,omitempty"`
	FileName     string `json:"fileName,omitempty"`
	FileType     string `json:"fileType,omitempty"`
	FileFormat   string `json:"fileFormat,omitempty"`
	FileSize     int    `json:"fileSize,omitempty"`
	URL          string `json:"url,omitempty"`
	Description  string `json:"description,omitempty"`
	FullFilePath string `json:"fullFilePath,omitempty"`
}

func (r *Resource) ident() (string, string) { return r.Owner, r.Name }
func (r *Resource) setOwner(owner string) { r.Owner = owner }

var resourceDescriptor = descriptor{kind: "resource", plural: "resources"}

func (c *Client) resources() collection[Resource, *Resource] {
	return newCollection[Resource](c, resourceDescriptor)
}

// ResourceQuery filters GetResources. Empty fields are still sent; the
// service treats them as "no filter".
type ResourceQuery struct {
	Owner     string
	User      string
	Field     string
	Value     string
	SortField string
	SortOrder string
}

func (q ResourceQuery) values() url.Values {
	return url.Values{
		"owner":     {q.Owner},
		"user":      {q.User},
		"field":     {q.Field},
		"value":     {q.Value},
		"sortField": {q.SortField},
		"sortOrder": {q.SortOrder},
	}
}

// GetResources lists resources matching q. Unlike other lists the owner is
// taken from q as given.
func (c *Client) GetResources(ctx context.Context, q ResourceQuery) ([]Resource, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	var items []Resource
	if _, err := c.get(ctx, resourceDescriptor.listAction(), q.values(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetResource returns the named resource, or nil if it doesn't exist.
func (c *Client) GetResource(ctx context.Context, name string) (*Resource, error) {
	return c.resources().get(ctx, name)
}

// AddResource creates resource under the configured organization.
func (c *Client) AddResource(ctx context.Context, resource *Resource) (bool, error) {
	return c.resources().add(ctx, resource)
}

// UpdateResource replaces the stored resource.
func (c *Client) UpdateResource(ctx context.Context, resource *Resource) (bool, error) {
	return c.resources().update(ctx, resource)
}

// DeleteResource removes resource. Only owner and name are submitted.
func (c *Client) DeleteResource(ctx context.Context, resource *Resource) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	if resource == nil {
		return false, fmt.Errorf("%w: resource", ErrNilEntity)
	}

	owner := resourceDescriptor.owner(c.cfg)
	payload := struct {
		Owner string `json:"owner"`
		Name  string `json:"name"`
	}{Owner: owner, Name: resource.Name}

	return c.mutate(ctx, resourceDescriptor.delAction(), nil, payload)
}

// UploadResource uploads the contents of file and returns the URL the
// service stored it at.
//
// The uploading user is resource.User (resource.Owner when empty) and the
// tag is resource.Tag (resource.Name when empty). Parent and FullFilePath
// are passed through.
func (c *Client) UploadResource(ctx context.Context, resource *Resource, file io.Reader) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	if resource == nil {
		return "", fmt.Errorf("%w: resource", ErrNilEntity)
	}
	if file == nil {
		return "", fmt.Errorf("upload-resource: nil file")
	}

	user := resource.User
	if user == "" {
		user = resource.Owner
	}
	tag := resource.Tag
	if tag == "" {
		tag = resource.Name
	}

	fields := []formField{
		{"owner", c.cfg.OrganizationName},
		{"user", user},
		{"application", c.cfg.ApplicationName},
		{"tag", tag},
		{"parent", resource.Parent},
		{"fullFilePath", resource.FullFilePath},
	}
	q := url.Values{}
	for _, f := range fields {
		q.Set(f.name, f.value)
	}

	filename := path.Base(resource.FullFilePath)
	if resource.FullFilePath == "" {
		filename = resource.Name
	}

	resp, err := c.postForm(ctx, "upload-resource", q, fields, &filePart{field: "file", filename: filename, r: file}, nil)
	if err != nil {
		return "", err
	}

	var fileURL string
	if err := resp.decodeData(&fileURL); err != nil {
		return "", fmt.Errorf("upload-resource: %w", err)
	}
	return fileURL, nil
}
