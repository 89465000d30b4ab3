package casdoorsdk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

func TestPolicyLifecycle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	enforcerID := testOrg + "/enf"

	read := casdoorsdk.Policy{Ptype: "p", V0: "alice", V1: "data1", V2: "read"}
	write := casdoorsdk.Policy{Ptype: "p", V0: "alice", V1: "data1", V2: "write"}

	ok, err := f.client.AddPolicy(ctx, "enf", read)
	require.NoError(t, err)
	require.True(t, ok)

	req := f.lastRequest(t, "add-policy")
	require.Equal(t, enforcerID, req.Query.Get("id"))
	var sent []casdoorsdk.Policy
	require.NoError(t, req.JSON(&sent))
	require.Equal(t, []casdoorsdk.Policy{read}, sent)

	ok, err = f.client.UpdatePolicy(ctx, "enf", read, write)
	require.NoError(t, err)
	require.True(t, ok)

	sent = nil
	require.NoError(t, f.lastRequest(t, "update-policy").JSON(&sent))
	require.Equal(t, []casdoorsdk.Policy{read, write}, sent)

	policies, err := f.client.GetPolicies(ctx, "enf", "")
	require.NoError(t, err)
	require.Equal(t, []casdoorsdk.Policy{write}, policies)
	require.False(t, f.lastRequest(t, "get-policies").Query.Has("adapterId"))

	_, err = f.client.GetPolicies(ctx, "enf", testOrg+"/adapter")
	require.NoError(t, err)
	require.Equal(t, testOrg+"/adapter", f.lastRequest(t, "get-policies").Query.Get("adapterId"))

	ok, err = f.client.RemovePolicy(ctx, "enf", read)
	require.NoError(t, err)
	require.False(t, ok, "old rule is gone")

	ok, err = f.client.RemovePolicy(ctx, "enf", write)
	require.NoError(t, err)
	require.True(t, ok)

	sent = nil
	require.NoError(t, f.lastRequest(t, "remove-policy").JSON(&sent))
	require.Len(t, sent, 1)
	require.Empty(t, f.fake.Policies(enforcerID))
}
