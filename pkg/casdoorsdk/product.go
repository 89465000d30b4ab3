package casdoorsdk

import "context"

// Product is something sold through the organization's payment providers.
type Product struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	Image       string   `json:"image,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	Description string   `json:"description,omitempty"`
	Tag         string   `json:"tag,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Price       float64  `json:"price,omitempty"`
	Quantity    int      `json:"quantity,omitempty"`
	Sold        int      `json:"sold,omitempty"`
	Providers   []string `json:"providers,omitempty"`
	ReturnURL   string   `json:"returnUrl,omitempty"`

	State string `json:"state,omitempty"`

	ProviderObjs []*Provider `json:"providerObjs,omitempty"`
}

func (p *Product) ident() (string, string) { return p.Owner, p.Name }
func (p *Product) setOwner(owner string) { p.Owner = owner }

var productDescriptor = descriptor{kind: "product", plural: "products"}

func (c *Client) products() collection[Product, *Product] {
	return newCollection[Product](c, productDescriptor)
}

func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	return c.products().list(ctx, nil)
}

func (c *Client) GetProduct(ctx context.Context, name string) (*Product, error) {
	return c.products().get(ctx, name)
}

func (c *Client) AddProduct(ctx context.Context, product *Product) (bool, error) {
	return c.products().add(ctx, product)
}

func (c *Client) UpdateProduct(ctx context.Context, product *Product) (bool, error) {
	return c.products().update(ctx, product)
}

func (c *Client) DeleteProduct(ctx context.Context, product *Product) (bool, error) {
	return c.products().delete(ctx, product)
}
