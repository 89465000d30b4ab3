package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/internal/fakecasdoor"
	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

type harness struct {
	fake *fakecasdoor.Server
	app  *Application
	out  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fake, err := fakecasdoor.New(fakecasdoor.Options{
		ClientID:     "client-a",
		ClientSecret: "s3cret",
		Organization: "built-in",
		Application:  "app-built-in",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	application, err := New(Config{
		Casdoor: casdoorsdk.Config{
			Endpoint:         srv.URL,
			ClientID:         "client-a",
			ClientSecret:     "s3cret",
			Certificate:      fake.Certificate(),
			OrganizationName: "built-in",
			ApplicationName:  "app-built-in",
		},
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "text",
	}, out)
	require.NoError(t, err)

	return &harness{fake: fake, app: application, out: out}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	h.out.Reset()
	err := h.app.Run(context.Background(), args)
	return h.out.String(), err
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{LogLevel: "error"}, &bytes.Buffer{})
	require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig)
}

func TestRunUsageErrors(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{
		{},
		{"frobnicate"},
		{"list"},
		{"list", "widget"},
		{"get", "role"},
		{"enforce"},
		{"list", "-bogus", "role"},
	} {
		_, err := h.run(t, args...)
		require.ErrorIs(t, err, ErrUsage, "%v", args)
	}
}

func TestListAndGet(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.fake.Seed("role", casdoorsdk.Role{Owner: "built-in", Name: "admins", DisplayName: "Admins"}))

	out, err := h.run(t, "list", "role")
	require.NoError(t, err)
	var roles []casdoorsdk.Role
	require.NoError(t, json.Unmarshal([]byte(out), &roles))
	require.Len(t, roles, 1)
	require.Equal(t, "Admins", roles[0].DisplayName)

	out, err = h.run(t, "get", "role", "admins")
	require.NoError(t, err)
	var role casdoorsdk.Role
	require.NoError(t, json.Unmarshal([]byte(out), &role))
	require.Equal(t, "admins", role.Name)

	_, err = h.run(t, "get", "role", "nobody")
	require.ErrorIs(t, err, errNotFound)

	_, err = h.run(t, "list", "-tree", "group")
	require.NoError(t, err)
	require.Equal(t, "true", mustLast(t, h.fake, "get-groups").Query.Get("withTree"))

	_, err = h.run(t, "list", "-page", "2", "-size", "5", "token")
	require.NoError(t, err)
	q := mustLast(t, h.fake, "get-tokens").Query
	require.Equal(t, "2", q.Get("p"))
	require.Equal(t, "5", q.Get("pageSize"))
}

func TestEveryKindLists(t *testing.T) {
	h := newHarness(t)

	for name := range h.app.kinds() {
		_, err := h.run(t, "list", name)
		require.NoError(t, err, name)
	}
}

func TestEnforceCommand(t *testing.T) {
	h := newHarness(t)
	h.fake.SeedPolicy("built-in/enf", casdoorsdk.Policy{Ptype: "p", V0: "alice", V1: "data1", V2: "read"})

	out, err := h.run(t, "enforce", "-enforcer", "built-in/enf", "alice", "data1", "read")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = h.run(t, "enforce", "-enforcer", "built-in/enf", "alice", "data1", "write")
	require.NoError(t, err)
	require.Equal(t, "false\n", out)
}

func TestURLCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "signin-url", "https://app.example.com/callback")
	require.NoError(t, err)
	require.Contains(t, out, "/login/oauth/authorize?")
	require.Contains(t, out, "client_id=client-a")

	out, err = h.run(t, "signin-url", "-pkce", "https://app.example.com/callback")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "code_challenge_method=S256")
	require.True(t, strings.HasPrefix(lines[1], "verifier: "))

	out, err = h.run(t, "signup-url", "-password", "https://app.example.com/callback")
	require.NoError(t, err)
	require.Contains(t, out, "/signup/app-built-in")
}

func TestTokenCommands(t *testing.T) {
	h := newHarness(t)

	tok, err := h.app.client.GetClientCredentialsToken(context.Background())
	require.NoError(t, err)

	out, err := h.run(t, "parse-token", tok.AccessToken)
	require.NoError(t, err)
	var claims casdoorsdk.Claims
	require.NoError(t, json.Unmarshal([]byte(out), &claims))
	require.Equal(t, "app-built-in", claims.Name)

	out, err = h.run(t, "introspect", "-hint", "access_token", tok.AccessToken)
	require.NoError(t, err)
	var info casdoorsdk.IntrospectionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.True(t, info.Active)

	_, err = h.run(t, "parse-token", "garbage")
	require.Error(t, err)
}

func TestMfaCodeCommand(t *testing.T) {
	h := newHarness(t)

	const secret = "JBSWY3DPEHPK3PXP"
	out, err := h.run(t, "mfa-code", secret)
	require.NoError(t, err)
	require.True(t, casdoorsdk.ValidateMfaPasscode(strings.TrimSpace(out), secret))

	_, err = h.run(t, "mfa-code")
	require.ErrorIs(t, err, ErrUsage)
}

func TestUploadCommand(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("quarterly"), 0o600))

	out, err := h.run(t, "upload", "-user", "alice", path, "/reports/q1.txt")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "/files/reports/q1.txt"))

	form, err := mustLast(t, h.fake, "upload-resource").Form()
	require.NoError(t, err)
	require.Equal(t, "alice", form.Get("user"))
	require.Equal(t, "report.txt", form.Get("tag"))

	_, err = h.run(t, "upload", filepath.Join(t.TempDir(), "missing"), "/x")
	require.Error(t, err)
}

func mustLast(t *testing.T, fake *fakecasdoor.Server, action string) fakecasdoor.Request {
	t.Helper()
	req, ok := fake.LastRequest(action)
	require.True(t, ok, "no %s request recorded", action)
	return req
}
