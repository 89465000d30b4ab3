package casdoorsdk

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/casdoor-go/pkg/httpx"
	"github.com/aussiebroadwan/casdoor-go/pkg/jwtx"
	"github.com/aussiebroadwan/casdoor-go/pkg/slogx"
)

// Client talks to one Casdoor application. It holds an immutable
// configuration and a single *http.Client and is safe for concurrent use.
type Client struct {
	cfg     Config
	baseURL string
	hc      *http.Client
	logger  *slog.Logger

	auth       AuthMode
	authHeader string
	envelope   Envelope
	payload    PayloadStyle

	verifier *jwtx.RS256Verifier
}

// New validates cfg and builds a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := options{
		auth:     AuthBasic,
		envelope: EnvelopeStandard,
		payload:  PayloadRaw,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeoutSet {
		cfg.Timeout = o.timeout
	}

	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:      cfg,
		baseURL:  cfg.Endpoint + "/api",
		logger:   o.logger,
		auth:     o.auth,
		envelope: o.envelope,
		payload:  o.payload,
	}
	if c.logger == nil {
		c.logger = slogx.Discard()
	}

	switch o.auth {
	case AuthBasic:
		if cfg.ClientSecret == "" {
			return nil, fmt.Errorf("%w: client secret is required for basic auth", ErrInvalidConfig)
		}
		creds := base64.StdEncoding.EncodeToString([]byte(cfg.ClientID + ":" + cfg.ClientSecret))
		c.authHeader = "Basic " + creds
	case AuthBearer:
		if o.bearerToken == "" {
			return nil, fmt.Errorf("%w: bearer auth needs WithBearerToken", ErrInvalidConfig)
		}
		c.authHeader = "Bearer " + o.bearerToken
	case AuthQuery:
		if cfg.ClientSecret == "" {
			return nil, fmt.Errorf("%w: client secret is required for query auth", ErrInvalidConfig)
		}
	default:
		return nil, fmt.Errorf("%w: unknown auth mode %d", ErrInvalidConfig, o.auth)
	}

	if cfg.Certificate != "" {
		v, err := jwtx.NewVerifierFromPEM([]byte(cfg.Certificate), jwtx.VerifyOptions{
			Leeway: jwtx.DefaultLeeway,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: certificate: %w", ErrInvalidConfig, err)
		}
		c.verifier = v
	}

	c.hc = c.buildHTTPClient(o)

	c.logger.Debug("casdoor client ready", "config", cfg, "auth", o.auth.String())
	return c, nil
}

// buildHTTPClient copies the caller's client (if any) so wrapping its
// transport never affects other users of it.
func (c *Client) buildHTTPClient(o options) *http.Client {
	hc := &http.Client{Timeout: c.cfg.Timeout}
	if o.httpClient != nil {
		cp := *o.httpClient
		hc = &cp
		if o.timeoutSet || hc.Timeout == 0 {
			hc.Timeout = c.cfg.Timeout
		}
	}

	mws := []httpx.Middleware{httpx.RequestID()}
	if o.metrics != nil {
		mws = append(mws, o.metrics.Middleware())
	}
	mws = append(mws, slogx.RoundTripper(c.logger))
	mws = append(mws, o.middleware...)

	hc.Transport = httpx.Chain(hc.Transport, mws...)
	return hc
}

// ready guards every operation against nil and zero clients.
func (c *Client) ready() error {
	if c == nil || c.hc == nil || c.baseURL == "" {
		return ErrNotInitialized
	}
	return nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// WithBearer returns a copy of the client authenticating with token. Use it
// with a token from GetClientCredentialsToken or GetOAuthToken.
func (c *Client) WithBearer(token string) (*Client, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%w: empty bearer token", ErrInvalidConfig)
	}
	cp := *c
	cp.auth = AuthBearer
	cp.authHeader = "Bearer " + token
	return &cp, nil
}
