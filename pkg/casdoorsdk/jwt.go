package casdoorsdk

import (
	"github.com/aussiebroadwan/casdoor-go/pkg/jwtx"
)

// Claims is the payload of a JWT issued by Casdoor: the signed-in user plus
// token metadata. User.ID is the user's id; the JWT id is RegisteredClaims.ID.
type Claims struct {
	User
	TokenType string `json:"tokenType,omitempty"`
	Nonce     string `json:"nonce,omitempty"`
	Scope     string `json:"scope,omitempty"`
	Azp       string `json:"azp,omitempty"`

	jwtx.Claims
}

// ParseJwtToken verifies an RS256 token against Config.Certificate and
// decodes its claims. Expiry is checked with jwtx.DefaultLeeway.
func (c *Client) ParseJwtToken(token string) (*Claims, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if c.verifier == nil {
		return nil, ErrNoCertificate
	}

	var claims Claims
	if err := c.verifier.VerifyInto(token, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
