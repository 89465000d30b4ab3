package casdoorsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Session records the login sessions a user holds in one application.
type Session struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Application string `json:"application"`
	CreatedTime string `json:"createdTime,omitempty"`

	SessionID []string `json:"sessionId,omitempty"`
}

func (s *Session) ident() (string, string) { return s.Owner, s.Name }
func (s *Session) setOwner(owner string) { s.Owner = owner }

var sessionDescriptor = descriptor{kind: "session", plural: "sessions"}

func (c *Client) sessions() collection[Session, *Session] {
	return newCollection[Session](c, sessionDescriptor)
}

// GetSessions lists the organization's sessions.
func (c *Client) GetSessions(ctx context.Context) ([]Session, error) {
	return c.sessions().list(ctx, nil)
}

// GetSession returns the session of user name in application, or nil if
// there is none. Sessions are keyed by "{org}/{name}/{application}".
func (c *Client) GetSession(ctx context.Context, name, application string) (*Session, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	q := url.Values{"sessionPkId": {c.cfg.OrganizationName + "/" + name + "/" + application}}
	resp, err := c.call(ctx, apiRequest{method: http.MethodGet, action: "get-session", query: q})
	if err != nil {
		return nil, err
	}
	if resp.IsNull() {
		return nil, nil
	}

	var s Session
	if err := resp.decodeData(&s); err != nil {
		return nil, fmt.Errorf("get-session: %w", err)
	}
	return &s, nil
}

// AddSession creates session under the configured organization.
func (c *Client) AddSession(ctx context.Context, session *Session) (bool, error) {
	return c.sessions().add(ctx, session)
}

// UpdateSession replaces the stored session.
func (c *Client) UpdateSession(ctx context.Context, session *Session) (bool, error) {
	return c.sessions().update(ctx, session)
}

// DeleteSession removes session.
func (c *Client) DeleteSession(ctx context.Context, session *Session) (bool, error) {
	return c.sessions().delete(ctx, session)
}
