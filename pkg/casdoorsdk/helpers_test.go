package casdoorsdk_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/internal/fakecasdoor"
	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

const (
	testOrg          = "built-in"
	testApp          = "app-built-in"
	testClientID     = "client-a"
	testClientSecret = "s3cret"
)

type fixture struct {
	fake   *fakecasdoor.Server
	srv    *httptest.Server
	client *casdoorsdk.Client
}

// newFixture starts a fake service and a client bound to it.
func newFixture(t *testing.T, opts ...casdoorsdk.Option) *fixture {
	t.Helper()

	fake, err := fakecasdoor.New(fakecasdoor.Options{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		Organization: testOrg,
		Application:  testApp,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := casdoorsdk.New(testConfig(srv.URL, fake.Certificate()), opts...)
	require.NoError(t, err)

	return &fixture{fake: fake, srv: srv, client: client}
}

func testConfig(endpoint, cert string) casdoorsdk.Config {
	return casdoorsdk.Config{
		Endpoint:         endpoint,
		ClientID:         testClientID,
		ClientSecret:     testClientSecret,
		Certificate:      cert,
		OrganizationName: testOrg,
		ApplicationName:  testApp,
	}
}

// lastRequest returns the last recorded request for action.
func (f *fixture) lastRequest(t *testing.T, action string) fakecasdoor.Request {
	t.Helper()
	req, ok := f.fake.LastRequest(action)
	require.True(t, ok, "no %s request recorded", action)
	return req
}
