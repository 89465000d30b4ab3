package casdoorsdk_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
	"github.com/aussiebroadwan/casdoor-go/pkg/httpx"
)

// stubServer answers every request with status and body and remembers the
// last request.
func stubServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Pointer[http.Request]) {
	t.Helper()

	var last atomic.Pointer[http.Request]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := casdoorsdk.New(casdoorsdk.Config{Endpoint: "nope"})
	require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig)

	cfg := testConfig("https://door.example.com", "")
	cfg.ClientSecret = ""
	_, err = casdoorsdk.New(cfg)
	require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig, "basic auth needs a secret")

	_, err = casdoorsdk.New(testConfig("https://door.example.com", ""), casdoorsdk.WithAuthMode(casdoorsdk.AuthBearer))
	require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig, "bearer auth needs a token")

	_, err = casdoorsdk.New(testConfig("https://door.example.com", "not a pem"))
	require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig)
}

func TestUninitializedClient(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, c := range map[string]*casdoorsdk.Client{
		"nil":  nil,
		"zero": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.GetUsers(ctx)
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)

			_, err = c.AddRole(ctx, &casdoorsdk.Role{Name: "r"})
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)

			_, err = c.Enforce(ctx, casdoorsdk.EnforceTarget{}, casdoorsdk.CasbinRequest{"a", "b", "c"})
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)

			_, err = c.GetOAuthToken(ctx, "code")
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)

			err = c.SendEmail(ctx, casdoorsdk.Email{Receivers: []string{"a@example.com"}})
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)

			_, err = c.ParseJwtToken("x.y.z")
			require.ErrorIs(t, err, casdoorsdk.ErrNotInitialized)
		})
	}
}

func TestAuthModes(t *testing.T) {
	t.Parallel()

	body := `{"status":"ok","msg":"","data":[]}`

	t.Run("basic", func(t *testing.T) {
		srv, last := stubServer(t, http.StatusOK, body)
		c, err := casdoorsdk.New(testConfig(srv.URL, ""))
		require.NoError(t, err)

		_, err = c.GetRoles(context.Background())
		require.NoError(t, err)

		want := "Basic " + base64.StdEncoding.EncodeToString([]byte(testClientID+":"+testClientSecret))
		require.Equal(t, want, last.Load().Header.Get("Authorization"))
		require.False(t, last.Load().URL.Query().Has("clientSecret"))
	})

	t.Run("bearer", func(t *testing.T) {
		srv, last := stubServer(t, http.StatusOK, body)
		c, err := casdoorsdk.New(testConfig(srv.URL, ""),
			casdoorsdk.WithAuthMode(casdoorsdk.AuthBearer),
			casdoorsdk.WithBearerToken("tok-123"),
		)
		require.NoError(t, err)

		_, err = c.GetRoles(context.Background())
		require.NoError(t, err)
		require.Equal(t, "Bearer tok-123", last.Load().Header.Get("Authorization"))
	})

	t.Run("query", func(t *testing.T) {
		srv, last := stubServer(t, http.StatusOK, body)
		c, err := casdoorsdk.New(testConfig(srv.URL, ""), casdoorsdk.WithAuthMode(casdoorsdk.AuthQuery))
		require.NoError(t, err)

		_, err = c.GetRoles(context.Background())
		require.NoError(t, err)

		q := last.Load().URL.Query()
		require.Empty(t, last.Load().Header.Get("Authorization"))
		require.Equal(t, testClientID, q.Get("clientId"))
		require.Equal(t, testClientSecret, q.Get("clientSecret"))
		require.Equal(t, testOrg, q.Get("owner"))
	})

	t.Run("query secret kept out of transport errors", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL
		srv.Close()

		c, err := casdoorsdk.New(testConfig(endpoint, ""), casdoorsdk.WithAuthMode(casdoorsdk.AuthQuery))
		require.NoError(t, err)

		_, err = c.GetRoles(context.Background())
		require.Error(t, err)
		require.NotContains(t, err.Error(), testClientSecret)
		require.Contains(t, err.Error(), "clientSecret=REDACTED")
		require.Contains(t, err.Error(), "clientId="+testClientID)
	})

	t.Run("with bearer copy", func(t *testing.T) {
		srv, last := stubServer(t, http.StatusOK, body)
		c, err := casdoorsdk.New(testConfig(srv.URL, ""))
		require.NoError(t, err)

		bc, err := c.WithBearer("tok-456")
		require.NoError(t, err)
		_, err = bc.GetRoles(context.Background())
		require.NoError(t, err)
		require.Equal(t, "Bearer tok-456", last.Load().Header.Get("Authorization"))

		_, err = c.GetRoles(context.Background())
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(last.Load().Header.Get("Authorization"), "Basic "))

		_, err = c.WithBearer("")
		require.ErrorIs(t, err, casdoorsdk.ErrInvalidConfig)
	})
}

func TestRequestPath(t *testing.T) {
	t.Parallel()

	srv, last := stubServer(t, http.StatusOK, `{"status":"ok","data":null}`)
	c, err := casdoorsdk.New(testConfig(srv.URL+"/", ""))
	require.NoError(t, err)

	_, err = c.GetCert(context.Background(), "cert-built-in")
	require.NoError(t, err)

	req := last.Load()
	require.Equal(t, http.MethodGet, req.Method)
	require.Equal(t, "/api/get-cert", req.URL.Path)
	require.Equal(t, "application/json", req.Header.Get("Accept"))
	require.NotEmpty(t, req.Header.Get("X-Request-ID"))
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	srv, _ := stubServer(t, http.StatusBadGateway, strings.Repeat("x", 500))
	c, err := casdoorsdk.New(testConfig(srv.URL, ""))
	require.NoError(t, err)

	_, err = c.GetUsers(context.Background())

	var httpErr *casdoorsdk.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	require.Equal(t, "get-users", httpErr.Action)
	require.Len(t, httpErr.Body, 203)
}

func TestAPIError(t *testing.T) {
	t.Parallel()

	srv, _ := stubServer(t, http.StatusOK, `{"status":"error","msg":"Unauthorized operation"}`)
	c, err := casdoorsdk.New(testConfig(srv.URL, ""))
	require.NoError(t, err)

	_, err = c.AddRole(context.Background(), &casdoorsdk.Role{Name: "r"})

	var apiErr *casdoorsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Unauthorized operation", apiErr.Msg)
}

func TestEnvelopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envelope casdoorsdk.Envelope
		body     string
	}{
		{"standard", casdoorsdk.EnvelopeStandard, `{"status":"ok","data":[{"owner":"built-in","name":"r1"}]}`},
		{"nested", casdoorsdk.EnvelopeNested, `{"data":{"data":[{"owner":"built-in","name":"r1"}]}}`},
		{"bare", casdoorsdk.EnvelopeBare, `[{"owner":"built-in","name":"r1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := stubServer(t, http.StatusOK, tt.body)
			c, err := casdoorsdk.New(testConfig(srv.URL, ""), casdoorsdk.WithEnvelope(tt.envelope))
			require.NoError(t, err)

			roles, err := c.GetRoles(context.Background())
			require.NoError(t, err)
			require.Equal(t, []casdoorsdk.Role{{Owner: "built-in", Name: "r1"}}, roles)
		})
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := casdoorsdk.New(testConfig(srv.URL, ""), casdoorsdk.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, 50*time.Millisecond, c.Config().Timeout)

	_, err = c.GetUsers(context.Background())
	require.Error(t, err)

	var httpErr *casdoorsdk.HTTPError
	require.False(t, errors.As(err, &httpErr))
}

func TestContextCancel(t *testing.T) {
	t.Parallel()

	srv, last := stubServer(t, http.StatusOK, `{"status":"ok","data":[]}`)
	c, err := casdoorsdk.New(testConfig(srv.URL, ""))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.GetUsers(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, last.Load())
}

func TestMiddlewareAndMetrics(t *testing.T) {
	t.Parallel()

	srv, _ := stubServer(t, http.StatusOK, `{"status":"ok","data":[]}`)

	reg := prometheus.NewRegistry()
	metrics, err := httpx.NewMetrics(reg, "casdoor")
	require.NoError(t, err)

	var seen atomic.Int32
	counting := func(next http.RoundTripper) http.RoundTripper {
		return httpx.RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			seen.Add(1)
			return next.RoundTrip(r)
		})
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := casdoorsdk.New(testConfig(srv.URL, ""),
		casdoorsdk.WithMiddleware(counting),
		casdoorsdk.WithMetrics(metrics),
		casdoorsdk.WithLogger(logger),
	)
	require.NoError(t, err)

	_, err = c.GetUsers(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, seen.Load())

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "casdoor_client_requests_total" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			require.EqualValues(t, 1, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	require.True(t, found)

	require.Contains(t, logs.String(), `"msg":"http_client_request"`)
	require.Contains(t, logs.String(), `"action":"/api/get-users"`)
	require.NotContains(t, logs.String(), testClientSecret)
}

func TestWithHTTPClientIsNotMutated(t *testing.T) {
	t.Parallel()

	srv, _ := stubServer(t, http.StatusOK, `{"status":"ok","data":[]}`)

	base := &http.Client{Timeout: 3 * time.Second}
	c, err := casdoorsdk.New(testConfig(srv.URL, ""), casdoorsdk.WithHTTPClient(base))
	require.NoError(t, err)

	_, err = c.GetUsers(context.Background())
	require.NoError(t, err)
	require.Nil(t, base.Transport)
	require.Equal(t, 3*time.Second, base.Timeout)
}
