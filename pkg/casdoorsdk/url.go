package casdoorsdk

import (
	"net/url"
	"strings"
)

// signAction is the first path segment of an authorize URL.
type signAction string

const (
	signActionLogin  signAction = "login"
	signActionSignup signAction = "signup"
)

// authorizeURL builds the OAuth authorize URL. The redirect URI loses its
// query and fragment; state defaults to the application name.
func (cfg Config) authorizeURL(action signAction, redirectURI string, extra url.Values) string {
	q := url.Values{
		"client_id":     {cfg.ClientID},
		"response_type": {"code"},
		"redirect_uri":  {stripQuery(redirectURI)},
		"scope":         {"read"},
		"state":         {cfg.ApplicationName},
	}
	for k, v := range extra {
		q[k] = v
	}
	return cfg.origin() + "/" + string(action) + "/oauth/authorize?" + q.Encode()
}

func (cfg Config) origin() string {
	return strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
}

func stripQuery(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		return u[:i]
	}
	return u
}

// SignUpURL returns the application's sign-up page when password sign-up
// is enabled, otherwise the OAuth sign-up URL.
func (cfg Config) SignUpURL(enablePassword bool, redirectURI string) string {
	if enablePassword {
		return cfg.origin() + "/signup/" + url.PathEscape(cfg.ApplicationName)
	}
	return cfg.authorizeURL(signActionSignup, redirectURI, nil)
}

// SignInURL returns the OAuth authorization code URL for the application.
func (cfg Config) SignInURL(redirectURI string) string {
	return cfg.authorizeURL(signActionLogin, redirectURI, nil)
}

// SignInURLWithPKCE is SignInURL with an explicit state and an S256 code
// challenge; see NewPKCE. An empty state falls back to the application name.
func (cfg Config) SignInURLWithPKCE(redirectURI, state string, pkce PKCE) string {
	extra := url.Values{
		"code_challenge":        {pkce.Challenge},
		"code_challenge_method": {pkce.Method},
	}
	if state != "" {
		extra.Set("state", state)
	}
	return cfg.authorizeURL(signActionLogin, redirectURI, extra)
}

// UserProfileURL returns the profile page of userName in the organization.
func (cfg Config) UserProfileURL(userName, accessToken string) string {
	u := cfg.origin() + "/users/" + url.PathEscape(cfg.OrganizationName) + "/" + url.PathEscape(userName)
	return withAccessToken(u, accessToken)
}

// MyProfileURL returns the account page of the token's user.
func (cfg Config) MyProfileURL(accessToken string) string {
	return withAccessToken(cfg.origin()+"/account", accessToken)
}

func withAccessToken(u, token string) string {
	if token == "" {
		return u
	}
	return u + "?" + url.Values{"access_token": {token}}.Encode()
}

// The Client variants return "" for a nil client.

func (c *Client) SignUpURL(enablePassword bool, redirectURI string) string {
	if c == nil {
		return ""
	}
	return c.cfg.SignUpURL(enablePassword, redirectURI)
}

func (c *Client) SignInURL(redirectURI string) string {
	if c == nil {
		return ""
	}
	return c.cfg.SignInURL(redirectURI)
}

func (c *Client) SignInURLWithPKCE(redirectURI, state string, pkce PKCE) string {
	if c == nil {
		return ""
	}
	return c.cfg.SignInURLWithPKCE(redirectURI, state, pkce)
}

func (c *Client) UserProfileURL(userName, accessToken string) string {
	if c == nil {
		return ""
	}
	return c.cfg.UserProfileURL(userName, accessToken)
}

func (c *Client) MyProfileURL(accessToken string) string {
	if c == nil {
		return ""
	}
	return c.cfg.MyProfileURL(accessToken)
}
