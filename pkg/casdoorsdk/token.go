package casdoorsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Token is an issued OAuth token as stored by the service. Tokens are
// always owned by "admin".
type Token struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	Application  string `json:"application,omitempty"`
	Organization string `json:"organization,omitempty"`
	User         string `json:"user,omitempty"`

	Code          string `json:"code,omitempty"`
	AccessToken   string `json:"accessToken,omitempty"`
	RefreshToken  string `json:"refreshToken,omitempty"`
	ExpiresIn     int    `json:"expiresIn,omitempty"`
	Scope         string `json:"scope,omitempty"`
	TokenType     string `json:"tokenType,omitempty"`
	CodeChallenge string `json:"codeChallenge,omitempty"`
	CodeIsUsed    bool   `json:"codeIsUsed"`
	CodeExpireIn  int64  `json:"codeExpireIn,omitempty"`
}

func (t *Token) ident() (string, string) { return t.Owner, t.Name }
func (t *Token) setOwner(owner string) { t.Owner = owner }

var tokenDescriptor = descriptor{kind: "token", plural: "tokens", scope: scopeAdmin}

func (c *Client) tokens() collection[Token, *Token] {
	return newCollection[Token](c, tokenDescriptor)
}

// GetTokens lists one page of tokens. Pages start at 1.
func (c *Client) GetTokens(ctx context.Context, p, pageSize int) ([]Token, error) {
	return c.tokens().list(ctx, url.Values{
		"p":        {strconv.Itoa(p)},
		"pageSize": {strconv.Itoa(pageSize)},
	})
}

// GetToken returns the named token, or nil if it doesn't exist.
func (c *Client) GetToken(ctx context.Context, name string) (*Token, error) {
	return c.tokens().get(ctx, name)
}

// AddToken stores token under the admin owner.
func (c *Client) AddToken(ctx context.Context, token *Token) (bool, error) {
	return c.tokens().add(ctx, token)
}

// UpdateToken replaces the stored token.
func (c *Client) UpdateToken(ctx context.Context, token *Token) (bool, error) {
	return c.tokens().update(ctx, token)
}

// DeleteToken removes token.
func (c *Client) DeleteToken(ctx context.Context, token *Token) (bool, error) {
	return c.tokens().delete(ctx, token)
}

// IntrospectionResponse is the RFC 7662 token introspection response. An
// inactive token only has Active set.
type IntrospectionResponse struct {
	Active bool `json:"active"`

	// Only present when active is true.
	Scope     string   `json:"scope,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	Username  string   `json:"username,omitempty"`
	TokenType string   `json:"token_type,omitempty"`
	Exp       int64    `json:"exp,omitempty"`
	Iat       int64    `json:"iat,omitempty"`
	Nbf       int64    `json:"nbf,omitempty"`
	Sub       string   `json:"sub,omitempty"`
	Aud       []string `json:"aud,omitempty"`
	Iss       string   `json:"iss,omitempty"`
	Jti       string   `json:"jti,omitempty"`
}

// Introspect asks the service whether token is active. hint is an optional
// token_type_hint such as "access_token".
func (c *Client) Introspect(ctx context.Context, token, hint string) (*IntrospectionResponse, error) {
	data := url.Values{"token": {token}}
	if hint != "" {
		data.Set("token_type_hint", hint)
	}

	const action = "login/oauth/introspect"
	status, body, err := c.postURLEncoded(ctx, action, data)
	if err != nil {
		return nil, err
	}
	if oerr := parseOAuth2Error(status, body); oerr != nil {
		return nil, oerr
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, action, body)
	}

	var resp IntrospectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}
