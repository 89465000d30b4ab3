// Package httpx holds client-side http.RoundTripper middleware shared by
// the SDK and the CLI.
package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/casdoor-go/pkg/idx"
)

// Middleware wraps a RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base with mws. The first middleware is the outermost, so it
// sees the request first and the response last.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		base = mws[i](base)
	}
	return base
}

type ctxKey struct{}

// WithRequestID pins the X-Request-ID used for requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFrom returns the request id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestID sets the X-Request-ID header on outbound requests that don't
// already carry one, preferring an id pinned on the context.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") != "" {
				return next.RoundTrip(r)
			}

			id := RequestIDFrom(r.Context())
			if id == "" {
				id = idx.New().String()
			}

			r = r.Clone(r.Context())
			r.Header.Set("X-Request-ID", id)
			return next.RoundTrip(r)
		})
	}
}
