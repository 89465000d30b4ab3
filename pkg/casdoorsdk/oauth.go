package casdoorsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/aussiebroadwan/casdoor-go/pkg/cryptox"
)

// OAuthToken is the token endpoint response per RFC 6749.
type OAuthToken struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

// GetOAuthToken exchanges an authorization code for tokens.
func (c *Client) GetOAuthToken(ctx context.Context, code string) (*OAuthToken, error) {
	return c.requestToken(ctx, "login/oauth/access_token", url.Values{
		"grant_type": {"authorization_code"},
		"code":       {code},
	})
}

// GetOAuthTokenWithVerifier exchanges a code obtained with
// SignInURLWithPKCE, proving possession of the PKCE verifier.
func (c *Client) GetOAuthTokenWithVerifier(ctx context.Context, code, verifier string) (*OAuthToken, error) {
	return c.requestToken(ctx, "login/oauth/access_token", url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"code_verifier": {verifier},
	})
}

// RefreshOAuthToken requests new tokens using a refresh token.
func (c *Client) RefreshOAuthToken(ctx context.Context, refreshToken string) (*OAuthToken, error) {
	return c.requestToken(ctx, "login/oauth/refresh_token", url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	})
}

// GetClientCredentialsToken requests an access token for the application
// itself. Pass the result to WithBearer or WithBearerToken.
//
// Note: this grant does not return a refresh token; request a new one when
// it expires.
func (c *Client) GetClientCredentialsToken(ctx context.Context) (*OAuthToken, error) {
	return c.requestToken(ctx, "login/oauth/access_token", url.Values{
		"grant_type": {"client_credentials"},
	})
}

// requestToken posts a grant with the client credentials added. The service
// reports grant failures as an OAuth2 error body, often with status 200.
func (c *Client) requestToken(ctx context.Context, action string, data url.Values) (*OAuthToken, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	data.Set("client_id", c.cfg.ClientID)
	data.Set("client_secret", c.cfg.ClientSecret)

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

	var tok OAuthToken
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%s: response carried no access token", action)
	}
	return &tok, nil
}

// ============================================================================
// PKCE
// ============================================================================

// PKCE holds a code verifier and its S256 challenge (RFC 7636).
type PKCE struct {
	Verifier  string
	Challenge string
	Method    string
}

// NewPKCE generates a random verifier and its challenge. Keep Verifier
// secret until the code exchange.
func NewPKCE() (PKCE, error) {
	verifier, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return PKCE{}, err
	}
	return PKCE{
		Verifier:  verifier,
		Challenge: cryptox.S256Challenge(verifier),
		Method:    "S256",
	}, nil
}

// NewState returns a random OAuth state value.
func NewState() (string, error) {
	return cryptox.GenerateToken(cryptox.TokenSize128)
}
