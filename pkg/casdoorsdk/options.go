package casdoorsdk

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/casdoor-go/pkg/httpx"
)

// AuthMode selects how requests are authenticated.
type AuthMode int

const (
	// AuthBasic sends HTTP Basic credentials built from the client id and
	// secret. This is the default.
	AuthBasic AuthMode = iota
	// AuthBearer sends an OAuth access token (see WithBearerToken).
	AuthBearer
	// AuthQuery appends clientId and clientSecret query parameters to every
	// call. Older deployments only understand this form.
	AuthQuery
)

func (m AuthMode) String() string {
	switch m {
	case AuthBasic:
		return "basic"
	case AuthBearer:
		return "bearer"
	case AuthQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Envelope selects how response bodies are unwrapped.
type Envelope int

const (
	// EnvelopeStandard is {"status", "msg", "data", "data2"}.
	EnvelopeStandard Envelope = iota
	// EnvelopeNested is {"data": {"data": T}}.
	//
	// Deprecated: only very old deployments answer this way.
	EnvelopeNested
	// EnvelopeBare is the payload itself with no wrapper.
	//
	// Deprecated: only very old deployments answer this way.
	EnvelopeBare
)

// PayloadStyle selects how entities are encoded on add/update/delete.
type PayloadStyle int

const (
	// PayloadRaw posts the entity JSON as the body. This is the default.
	PayloadRaw PayloadStyle = iota
	// PayloadInfoWrapped posts {"<kind>Info": "<entity JSON as a string>"}.
	PayloadInfoWrapped
)

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient  *http.Client
	timeout     time.Duration
	timeoutSet  bool
	logger      *slog.Logger
	auth        AuthMode
	bearerToken string
	envelope    Envelope
	payload     PayloadStyle
	middleware  []httpx.Middleware
	metrics     *httpx.Metrics
}

// WithHTTPClient uses hc as the base client. It is copied, never mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithTimeout overrides Config.Timeout, including on a client passed to
// WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeoutSet = true
		o.timeout = d
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAuthMode selects the authentication scheme.
func WithAuthMode(m AuthMode) Option {
	return func(o *options) { o.auth = m }
}

// WithBearerToken switches to AuthBearer using token.
func WithBearerToken(token string) Option {
	return func(o *options) {
		o.auth = AuthBearer
		o.bearerToken = token
	}
}

// WithEnvelope selects the response envelope shape.
func WithEnvelope(e Envelope) Option {
	return func(o *options) { o.envelope = e }
}

// WithPayloadStyle selects how entities are encoded on mutations.
func WithPayloadStyle(p PayloadStyle) Option {
	return func(o *options) { o.payload = p }
}

// WithMiddleware adds RoundTripper middleware, innermost last.
func WithMiddleware(mws ...httpx.Middleware) Option {
	return func(o *options) { o.middleware = append(o.middleware, mws...) }
}

// WithMetrics records request metrics with m.
func WithMetrics(m *httpx.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
