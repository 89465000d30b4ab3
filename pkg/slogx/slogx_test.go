package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/casdoor-go/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, slogx.ParseLevel(in), in)
	}
}

func TestNewWritesServiceAttributes(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{
		Service: "casdoorctl",
		Version: "test",
		Env:     "prod",
		Level:   "info",
		Format:  "json",
		Output:  &buf,
	})
	logger.Info("hello")
	logger.Debug("dropped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "casdoorctl", rec["service"])
	require.Equal(t, "prod", rec["env"])
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := slogx.WithContext(context.Background(), logger.With("req_id", "req-1"))
	slogx.FromContext(ctx).Info("scoped")

	require.Contains(t, buf.String(), `"req_id":"req-1"`)
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))
}

func TestRoundTripperLogsRequest(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(slogx.RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client := &http.Client{Transport: slogx.RoundTripper(logger)(http.DefaultTransport)}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/get-roles", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	// the caller's request is not mutated
	require.Empty(t, req.Header.Get(slogx.RequestIDHeader))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "http_client_request", rec["msg"])
	require.Equal(t, "/api/get-roles", rec["action"])
	require.Equal(t, float64(http.StatusTeapot), rec["status"])
	require.Equal(t, gotID, rec["req_id"])
	require.NotEmpty(t, gotID)
}
