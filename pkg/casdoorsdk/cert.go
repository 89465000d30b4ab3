package casdoorsdk

import "context"

// Cert is a signing certificate. Applications reference one by name to sign
// their JWTs.
type Cert struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	DisplayName     string `json:"displayName,omitempty"`
	Scope           string `json:"scope,omitempty"`
	Type            string `json:"type,omitempty"`
	CryptoAlgorithm string `json:"cryptoAlgorithm,omitempty"`
	BitSize         int    `json:"bitSize,omitempty"`
	ExpireInYears   int    `json:"expireInYears,omitempty"`

	Certificate            string `json:"certificate,omitempty"`
	PrivateKey             string `json:"privateKey,omitempty"`
	AuthorityPublicKey     string `json:"authorityPublicKey,omitempty"`
	AuthorityRootPublicKey string `json:"authorityRootPublicKey,omitempty"`
}

func (ct *Cert) ident() (string, string) { return ct.Owner, ct.Name }
func (ct *Cert) setOwner(owner string) { ct.Owner = owner }

var certDescriptor = descriptor{kind: "cert", plural: "certs"}

func (c *Client) certs() collection[Cert, *Cert] {
	return newCollection[Cert](c, certDescriptor)
}

// GetCerts lists the organization's certificates.
func (c *Client) GetCerts(ctx context.Context) ([]Cert, error) {
	return c.certs().list(ctx, nil)
}

// GetCert returns the named certificate, or nil if it doesn't exist.
func (c *Client) GetCert(ctx context.Context, name string) (*Cert, error) {
	return c.certs().get(ctx, name)
}

func (c *Client) AddCert(ctx context.Context, cert *Cert) (bool, error) {
	return c.certs().add(ctx, cert)
}

func (c *Client) UpdateCert(ctx context.Context, cert *Cert) (bool, error) {
	return c.certs().update(ctx, cert)
}

func (c *Client) DeleteCert(ctx context.Context, cert *Cert) (bool, error) {
	return c.certs().delete(ctx, cert)
}
