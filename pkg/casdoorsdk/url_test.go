package casdoorsdk

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignInURL(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	raw := cfg.SignInURL("https://app/callback?x=1")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "door.example.com", u.Host)
	require.Equal(t, "/login/oauth/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "https://app/callback", q.Get("redirect_uri"))
	require.Equal(t, "client-a", q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "read", q.Get("scope"))
	require.Equal(t, "app-built-in", q.Get("state"))
}

func TestStripQuery(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://app/callback":          "https://app/callback",
		"https://app/callback?x=1":      "https://app/callback",
		"https://app/callback#frag":     "https://app/callback",
		"https://app/callback?x=1#frag": "https://app/callback",
		"":                              "",
	}
	for in, want := range tests {
		require.Equal(t, want, stripQuery(in), in)
	}
}

func TestSignUpURL(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.Equal(t, "https://door.example.com/signup/app-built-in", cfg.SignUpURL(true, "https://app/cb"))

	u, err := url.Parse(cfg.SignUpURL(false, "https://app/cb#x"))
	require.NoError(t, err)
	require.Equal(t, "/signup/oauth/authorize", u.Path)
	require.Equal(t, "https://app/cb", u.Query().Get("redirect_uri"))
}

func TestSignInURLWithPKCE(t *testing.T) {
	t.Parallel()

	pkce, err := NewPKCE()
	require.NoError(t, err)
	require.Equal(t, "S256", pkce.Method)
	require.NotEqual(t, pkce.Verifier, pkce.Challenge)

	cfg := validConfig()

	u, err := url.Parse(cfg.SignInURLWithPKCE("https://app/cb", "xyz", pkce))
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, "xyz", q.Get("state"))
	require.Equal(t, pkce.Challenge, q.Get("code_challenge"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))

	u, err = url.Parse(cfg.SignInURLWithPKCE("https://app/cb", "", pkce))
	require.NoError(t, err)
	require.Equal(t, "app-built-in", u.Query().Get("state"))
}

func TestProfileURLs(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	require.Equal(t, "https://door.example.com/users/built-in/alice", cfg.UserProfileURL("alice", ""))
	require.Equal(t, "https://door.example.com/users/built-in/alice?access_token=tok", cfg.UserProfileURL("alice", "tok"))
	require.Equal(t, "https://door.example.com/account", cfg.MyProfileURL(""))
	require.Equal(t, "https://door.example.com/account?access_token=tok", cfg.MyProfileURL("tok"))
}

func TestClientURLsOnNilClient(t *testing.T) {
	t.Parallel()

	var c *Client
	require.Empty(t, c.SignInURL("https://app/cb"))
	require.Empty(t, c.SignUpURL(true, "https://app/cb"))
	require.Empty(t, c.MyProfileURL("tok"))
}
