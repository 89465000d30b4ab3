package casdoorsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ============================================================================
// Sentinel Errors
// ============================================================================

var (
	// ErrNotInitialized is returned by every method of a nil or zero Client.
	// No network call is attempted.
	ErrNotInitialized = errors.New("casdoorsdk: client not initialized")

	// ErrInvalidConfig wraps every configuration problem found by
	// Config.Validate or New.
	ErrInvalidConfig = errors.New("casdoorsdk: invalid config")

	// ErrNilEntity is returned when a mutation is called with a nil entity.
	ErrNilEntity = errors.New("casdoorsdk: nil entity")

	// ErrNoCertificate is returned by ParseJwtToken when the client was built
	// without Config.Certificate.
	ErrNoCertificate = errors.New("casdoorsdk: no certificate configured")
)

// ============================================================================
// HTTPError - non-2xx responses
// ============================================================================

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 200

// HTTPError is returned when the service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Action     string

	// Body is the start of the response body, truncated.
	Body string
}

func newHTTPError(status int, action string, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Action:     action,
		Body:       truncate(strings.TrimSpace(string(body)), maxErrorBody),
	}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("casdoorsdk: %s: HTTP %d %s", e.Action, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("casdoorsdk: %s: HTTP %d: %s", e.Action, e.StatusCode, e.Body)
}

// ============================================================================
// APIError - {"status": "error"} envelopes
// ============================================================================

// APIError is returned when the service answers 2xx with status "error".
type APIError struct {
	Action string
	Msg    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("casdoorsdk: %s: %s", e.Action, e.Msg)
}

// ============================================================================
// OAuth2Error - token endpoint failures
// ============================================================================

// OAuth2Error is an RFC 6749 error returned by the token endpoints. The
// service reports these with HTTP 200, so they are detected by body.
type OAuth2Error struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// Code is the OAuth2 error code (e.g., "invalid_request", "invalid_grant")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// parseOAuth2Error returns the OAuth2 error carried by body, if any.
func parseOAuth2Error(status int, body []byte) *OAuth2Error {
	var oerr OAuth2Error
	if err := json.Unmarshal(body, &oerr); err != nil || oerr.Code == "" {
		return nil
	}
	oerr.StatusCode = status
	return &oerr
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
