package casdoorsdk

import "context"

// Payment records one purchase attempt through a payment provider.
type Payment struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`
	DisplayName string `json:"displayName,omitempty"`

	Provider string `json:"provider,omitempty"`
	Type     string `json:"type,omitempty"`

	ProductName        string  `json:"productName,omitempty"`
	ProductDisplayName string  `json:"productDisplayName,omitempty"`
	Detail             string  `json:"detail,omitempty"`
	Tag                string  `json:"tag,omitempty"`
	Currency           string  `json:"currency,omitempty"`
	Price              float64 `json:"price,omitempty"`
	ReturnURL          string  `json:"returnUrl,omitempty"`

	User         string `json:"user,omitempty"`
	PersonName   string `json:"personName,omitempty"`
	PersonIDCard string `json:"personIdCard,omitempty"`
	PersonEmail  string `json:"personEmail,omitempty"`
	PersonPhone  string `json:"personPhone,omitempty"`

	InvoiceType   string `json:"invoiceType,omitempty"`
	InvoiceTitle  string `json:"invoiceTitle,omitempty"`
	InvoiceTaxID  string `json:"invoiceTaxId,omitempty"`
	InvoiceRemark string `json:"invoiceRemark,omitempty"`
	InvoiceURL    string `json:"invoiceUrl,omitempty"`

	OutOrderID string `json:"outOrderId,omitempty"`
	PayURL     string `json:"payUrl,omitempty"`

	State   string `json:"state,omitempty"`
	Message string `json:"message,omitempty"`
}

func (p *Payment) ident() (string, string) { return p.Owner, p.Name }
func (p *Payment) setOwner(owner string) { p.Owner = owner }

var paymentDescriptor = descriptor{kind: "payment", plural: "payments"}

func (c *Client) payments() collection[Payment, *Payment] {
	return newCollection[Payment](c, paymentDescriptor)
}

func (c *Client) GetPayments(ctx context.Context) ([]Payment, error) {
	return c.payments().list(ctx, nil)
}

func (c *Client) GetPayment(ctx context.Context, name string) (*Payment, error) {
	return c.payments().get(ctx, name)
}

func (c *Client) AddPayment(ctx context.Context, payment *Payment) (bool, error) {
	return c.payments().add(ctx, payment)
}

func (c *Client) UpdatePayment(ctx context.Context, payment *Payment) (bool, error) {
	return c.payments().update(ctx, payment)
}

func (c *Client) DeletePayment(ctx context.Context, payment *Payment) (bool, error) {
	return c.payments().delete(ctx, payment)
}
