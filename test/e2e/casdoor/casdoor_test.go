package casdoor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
	"github.com/aussiebroadwan/casdoor-go/pkg/idx"
)

func TestRoleLifecycle(t *testing.T) {
	client := newClient(t)
	ctx := t.Context()

	role := &casdoorsdk.Role{Name: idx.Name("role"), DisplayName: "E2E role", IsEnabled: true}
	ok, err := client.AddRole(ctx, role)
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _, _ = client.DeleteRole(context.Background(), role) })

	got, err := client.GetRole(ctx, role.Name)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, organization, got.Owner)
	require.Equal(t, "E2E role", got.DisplayName)

	got.DisplayName = "Renamed"
	ok, err = client.UpdateRole(ctx, got)
	require.NoError(t, err)
	require.True(t, ok)

	roles, err := client.GetRoles(ctx)
	require.NoError(t, err)
	found := false
	for _, r := range roles {
		if r.Name == role.Name {
			found = true
			require.Equal(t, "Renamed", r.DisplayName)
		}
	}
	require.True(t, found)

	ok, err = client.DeleteRole(ctx, role)
	require.NoError(t, err)
	require.True(t, ok)

	gone, err := client.GetRole(ctx, role.Name)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestUserAndPassword(t *testing.T) {
	client := newClient(t)
	ctx := t.Context()

	before, err := client.GetUserCount(ctx, false)
	require.NoError(t, err)

	user := &casdoorsdk.User{
		Name:        idx.Name("user"),
		DisplayName: "E2E User",
		Password:    "first-Pass1",
		Type:        "normal-user",
	}
	ok, err := client.AddUser(ctx, user)
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _, _ = client.DeleteUser(context.Background(), user) })

	after, err := client.GetUserCount(ctx, false)
	require.NoError(t, err)
	require.Equal(t, before+1, after)

	require.NoError(t, client.SetPassword(ctx, casdoorsdk.SetPassword{
		Owner:       organization,
		Name:        user.Name,
		OldPassword: "first-Pass1",
		NewPassword: "second-Pass2",
	}))
}

func TestClientCredentialsToken(t *testing.T) {
	client := newClient(t)
	ctx := t.Context()

	tok, err := client.GetClientCredentialsToken(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tok.AccessToken)

	claims, err := client.ParseJwtToken(tok.AccessToken)
	require.NoError(t, err)
	require.NotEmpty(t, claims.Standard().Issuer)

	info, err := client.Introspect(ctx, tok.AccessToken, "access_token")
	require.NoError(t, err)
	require.True(t, info.Active)

	bearer, err := client.WithBearer(tok.AccessToken)
	require.NoError(t, err)
	_, err = bearer.GetOrganizations(ctx)
	require.NoError(t, err)
}

func TestBadAuthorizationCode(t *testing.T) {
	client := newClient(t)

	_, err := client.GetOAuthToken(t.Context(), "not-a-code")
	var oerr *casdoorsdk.OAuth2Error
	require.ErrorAs(t, err, &oerr)
	require.NotEmpty(t, oerr.Code)
}

func TestSignInURLReachable(t *testing.T) {
	client := newClient(t)

	u := client.SignInURL(instance.endpoint + "/callback?ignored=1")
	require.True(t, strings.HasPrefix(u, instance.endpoint+"/login/oauth/authorize?"))
	require.NotContains(t, u, "ignored")
}
