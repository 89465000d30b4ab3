package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/casdoor-go/pkg/idx"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// RoundTripper logs every outbound request at debug level. The logger is
// taken from the request context when one was attached with WithContext,
// otherwise base is used.
func RoundTripper(base *slog.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if next == nil {
			next = http.DefaultTransport
		}
		return &loggingTransport{base: base, next: next}
	}
}

type loggingTransport struct {
	base *slog.Logger
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = idx.New().String()
		r = r.Clone(r.Context())
		r.Header.Set(RequestIDHeader, reqID)
	}

	logger := t.base
	if l, ok := r.Context().Value(ctxKey{}).(*slog.Logger); ok {
		logger = l
	}
	logger = logger.With(
		"req_id", reqID,
		"method", r.Method,
		"action", r.URL.Path,
	)

	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Debug("http_client_request", "error", err, "duration_ms", duration)
		return nil, err
	}

	logger.Debug("http_client_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
