package casdoorsdk

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Endpoint:         "https://door.example.com/",
		ClientID:         "client-a",
		ClientSecret:     "s3cret",
		Certificate:      "-----BEGIN CERTIFICATE-----",
		OrganizationName: "built-in",
		ApplicationName:  "app-built-in",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing endpoint", func(c *Config) { c.Endpoint = "" }},
		{"relative endpoint", func(c *Config) { c.Endpoint = "door.example.com" }},
		{"bad scheme", func(c *Config) { c.Endpoint = "ftp://door.example.com" }},
		{"missing client id", func(c *Config) { c.ClientID = "" }},
		{"missing organization", func(c *Config) { c.OrganizationName = "" }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	err := Config{}.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	require.Len(t, joined.Unwrap(), 3)
}

func TestConfigNormalized(t *testing.T) {
	t.Parallel()

	cfg := validConfig().normalized()
	require.Equal(t, "https://door.example.com", cfg.Endpoint)
	require.Equal(t, DefaultTimeout, cfg.Timeout)

	custom := validConfig()
	custom.Timeout = 5 * time.Second
	require.Equal(t, 5*time.Second, custom.normalized().Timeout)
}

func TestConfigRedactsSecrets(t *testing.T) {
	t.Parallel()

	cfg := validConfig()

	require.NotContains(t, cfg.String(), "s3cret")
	require.NotContains(t, cfg.String(), "BEGIN CERTIFICATE")
	require.Contains(t, cfg.String(), "client-a")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("config", "config", cfg)

	require.NotContains(t, buf.String(), "s3cret")
	require.Contains(t, buf.String(), `"client_secret":"[REDACTED]"`)
	require.Contains(t, buf.String(), `"organization":"built-in"`)
}
