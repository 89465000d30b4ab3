package casdoorsdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// MfaType names a second factor.
type MfaType string

const (
	MfaTypeEmail MfaType = "email"
	MfaTypeSms   MfaType = "sms"
	MfaTypeApp   MfaType = "app"
)

// MfaData identifies the user and factor an MFA setup call applies to.
// Secret, Dest, CountryCode and RecoveryCodes come from the InitiateMfa
// response and are only sent when set.
type MfaData struct {
	Owner         string
	Name          string
	MfaType       MfaType
	Secret        string
	Dest          string
	CountryCode   string
	RecoveryCodes string
}

func (d MfaData) fields() []formField {
	fields := []formField{
		{"owner", d.Owner},
		{"mfaType", string(d.MfaType)},
		{"name", d.Name},
	}
	optional := []formField{
		{"secret", d.Secret},
		{"dest", d.Dest},
		{"countryCode", d.CountryCode},
		{"recoveryCodes", d.RecoveryCodes},
	}
	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// MfaProps describes one factor of a user.
type MfaProps struct {
	Enabled       bool     `json:"enabled"`
	IsPreferred   bool     `json:"isPreferred"`
	MfaType       string   `json:"mfaType"`
	Secret        string   `json:"secret,omitempty"`
	CountryCode   string   `json:"countryCode,omitempty"`
	URL           string   `json:"url,omitempty"`
	RecoveryCodes []string `json:"recoveryCodes,omitempty"`
}

// InitiateMfa starts enrolling a factor. For app factors the returned
// props carry the TOTP secret and otpauth URL.
func (c *Client) InitiateMfa(ctx context.Context, data MfaData) (*MfaProps, error) {
	resp, err := c.postForm(ctx, "mfa/setup/initiate", nil, data.fields(), nil, nil)
	if err != nil {
		return nil, err
	}

	var props MfaProps
	if err := resp.decodeData(&props); err != nil {
		return nil, fmt.Errorf("mfa/setup/initiate: %w", err)
	}
	return &props, nil
}

// VerifyMfa checks passcode against the factor being enrolled.
func (c *Client) VerifyMfa(ctx context.Context, data MfaData, passcode string) error {
	fields := append(data.fields(), formField{"passcode", passcode})
	_, err := c.postForm(ctx, "mfa/setup/verify", nil, fields, nil, nil)
	return err
}

// EnableMfa finishes enrollment. cookie, when non-empty, is forwarded as the
// Cookie header so the service can find the setup session.
func (c *Client) EnableMfa(ctx context.Context, data MfaData, cookie string) error {
	var h http.Header
	if cookie != "" {
		h = http.Header{"Cookie": {cookie}}
	}
	_, err := c.postForm(ctx, "mfa/setup/enable", nil, data.fields(), nil, h)
	return err
}

// SetPreferredMfa marks the factor as preferred and returns the user's
// factors.
func (c *Client) SetPreferredMfa(ctx context.Context, data MfaData) ([]MfaProps, error) {
	return c.mfaList(ctx, "set-preferred-mfa", data.fields())
}

// DeleteMfa removes every factor of the user owner/name.
func (c *Client) DeleteMfa(ctx context.Context, owner, name string) ([]MfaProps, error) {
	return c.mfaList(ctx, "delete-mfa", []formField{{"owner", owner}, {"name", name}})
}

func (c *Client) mfaList(ctx context.Context, action string, fields []formField) ([]MfaProps, error) {
	resp, err := c.postForm(ctx, action, nil, fields, nil, nil)
	if err != nil {
		return nil, err
	}

	var props []MfaProps
	if err := resp.decodeData(&props); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return props, nil
}

// ============================================================================
// TOTP helpers
// ============================================================================

// ParseMfaURL parses the otpauth:// URL returned by InitiateMfa.
func ParseMfaURL(rawURL string) (*otp.Key, error) {
	key, err := otp.NewKeyFromURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("casdoorsdk: parse mfa url: %w", err)
	}
	if key.Type() != "totp" {
		return nil, fmt.Errorf("casdoorsdk: unsupported otp type %q", key.Type())
	}
	return key, nil
}

// GenerateMfaPasscode returns the six digit TOTP passcode for secret at t.
func GenerateMfaPasscode(secret string, t time.Time) (string, error) {
	code, err := totp.GenerateCode(secret, t)
	if err != nil {
		return "", fmt.Errorf("casdoorsdk: generate passcode: %w", err)
	}
	return code, nil
}

// ValidateMfaPasscode reports whether passcode is valid for secret now.
func ValidateMfaPasscode(passcode, secret string) bool {
	return totp.Validate(passcode, secret)
}
