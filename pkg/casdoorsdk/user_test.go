package casdoorsdk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

func TestUserLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.client.AddUser(ctx, &casdoorsdk.User{Name: "alice", DisplayName: "Alice"})
	require.NoError(t, err)
	require.True(t, ok)

	alice, err := f.client.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	require.Equal(t, testOrg, alice.Owner)
	require.NotEmpty(t, alice.ID, "the service assigns ids")

	alice.DisplayName = "Alice A."
	ok, err = f.client.UpdateUser(ctx, alice)
	require.NoError(t, err)
	require.True(t, ok)

	users, err := f.client.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Alice A.", users[0].DisplayName)

	ok, err = f.client.DeleteUser(ctx, alice)
	require.NoError(t, err)
	require.True(t, ok)

	missing, err := f.client.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestGetUserCount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for _, u := range []casdoorsdk.User{
		{Owner: testOrg, Name: "alice", IsOnline: true},
		{Owner: testOrg, Name: "bob"},
		{Owner: "other", Name: "carol", IsOnline: true},
	} {
		require.NoError(t, f.fake.Seed("user", u))
	}

	total, err := f.client.GetUserCount(ctx, false)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "false", f.lastRequest(t, "get-user-count").Query.Get("isOnline"))

	online, err := f.client.GetUserCount(ctx, true)
	require.NoError(t, err)
	require.Equal(t, 1, online)
	require.Equal(t, testOrg, f.lastRequest(t, "get-user-count").Query.Get("owner"))
}

func TestSetPassword(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.fake.Seed("user", casdoorsdk.User{Owner: testOrg, Name: "alice", Password: "old"}))

	err := f.client.SetPassword(ctx, casdoorsdk.SetPassword{Owner: testOrg, Name: "alice", OldPassword: "old", NewPassword: "new"})
	require.NoError(t, err)

	form, err := f.lastRequest(t, "set-password").Form()
	require.NoError(t, err)
	require.Equal(t, testOrg, form.Get("userOwner"))
	require.Equal(t, "alice", form.Get("userName"))
	require.Equal(t, "old", form.Get("oldPassword"))
	require.Equal(t, "new", form.Get("newPassword"))

	var stored casdoorsdk.User
	require.NoError(t, f.fake.Lookup("user", testOrg+"/alice", &stored))
	require.Equal(t, "new", stored.Password)

	err = f.client.SetPassword(ctx, casdoorsdk.SetPassword{Owner: testOrg, Name: "alice", OldPassword: "old", NewPassword: "newer"})
	var apiErr *casdoorsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, err.Error(), "alice")
}
