package casdoorsdk

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the per-request timeout used when Config.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// adminOwner scopes applications and tokens, which live outside any single
// organization.
const adminOwner = "admin"

// Config holds the connection settings for one Casdoor application.
type Config struct {
	// Endpoint is the Casdoor origin, e.g. "https://door.example.com".
	Endpoint string `yaml:"endpoint"`

	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// Certificate is the PEM encoded certificate (or public key) the
	// application signs its JWTs with. Only ParseJwtToken needs it.
	Certificate string `yaml:"certificate"`

	// OrganizationName scopes every owner-addressed call.
	OrganizationName string `yaml:"organization"`

	// ApplicationName is used for sign-in state and resource uploads.
	ApplicationName string `yaml:"application"`

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration `yaml:"timeout"`
}

// Validate reports missing or malformed fields. Every returned error wraps
// ErrInvalidConfig.
func (cfg Config) Validate() error {
	var errs []error

	if cfg.Endpoint == "" {
		errs = append(errs, fmt.Errorf("%w: endpoint is required", ErrInvalidConfig))
	} else if u, err := url.Parse(cfg.Endpoint); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("%w: endpoint %q must be an absolute http(s) URL", ErrInvalidConfig, cfg.Endpoint))
	}

	if cfg.ClientID == "" {
		errs = append(errs, fmt.Errorf("%w: client id is required", ErrInvalidConfig))
	}

	if cfg.OrganizationName == "" {
		errs = append(errs, fmt.Errorf("%w: organization name is required", ErrInvalidConfig))
	}

	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// normalized returns a copy with defaults applied and the endpoint trimmed.
func (cfg Config) normalized() Config {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// LogValue keeps credentials out of logs.
func (cfg Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("endpoint", cfg.Endpoint),
		slog.String("client_id", cfg.ClientID),
		slog.String("client_secret", redact(cfg.ClientSecret)),
		slog.String("certificate", redact(cfg.Certificate)),
		slog.String("organization", cfg.OrganizationName),
		slog.String("application", cfg.ApplicationName),
		slog.Duration("timeout", cfg.Timeout),
	)
}

// String implements fmt.Stringer with secrets redacted.
func (cfg Config) String() string {
	return fmt.Sprintf(
		"Config{Endpoint:%s ClientID:%s ClientSecret:%s Certificate:%s Organization:%s Application:%s Timeout:%s}",
		cfg.Endpoint, cfg.ClientID, redact(cfg.ClientSecret), redact(cfg.Certificate),
		cfg.OrganizationName, cfg.ApplicationName, cfg.Timeout,
	)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}
