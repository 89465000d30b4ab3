package casdoorsdk

import "context"

// Model is a casbin model definition (request, policy, matchers...).
type Model struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`

	ModelText string `json:"modelText"`
}

func (m *Model) ident() (string, string) { return m.Owner, m.Name }
func (m *Model) setOwner(owner string) { m.Owner = owner }

var modelDescriptor = descriptor{kind: "model", plural: "models"}

func (c *Client) models() collection[Model, *Model] {
	return newCollection[Model](c, modelDescriptor)
}

func (c *Client) GetModels(ctx context.Context) ([]Model, error) {
	return c.models().list(ctx, nil)
}

func (c *Client) GetModel(ctx context.Context, name string) (*Model, error) {
	return c.models().get(ctx, name)
}

func (c *Client) AddModel(ctx context.Context, model *Model) (bool, error) {
	return c.models().add(ctx, model)
}

func (c *Client) UpdateModel(ctx context.Context, model *Model) (bool, error) {
	return c.models().update(ctx, model)
}

func (c *Client) DeleteModel(ctx context.Context, model *Model) (bool, error) {
	return c.models().delete(ctx, model)
}
