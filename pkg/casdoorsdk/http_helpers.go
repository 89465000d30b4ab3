package casdoorsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// apiRequest describes one call relative to {endpoint}/api.
type apiRequest struct {
	method string
	action string
	query  url.Values
	body   io.Reader
	header http.Header
}

// url builds the full request URL, adding legacy query credentials when the
// client uses AuthQuery.
func (c *Client) url(action string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if c.auth == AuthQuery {
		q.Set("clientId", c.cfg.ClientID)
		q.Set("clientSecret", c.cfg.ClientSecret)
	}

	u := c.baseURL + "/" + strings.TrimPrefix(action, "/")
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// redactURL masks the legacy query secret so transport errors can be logged.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Get("clientSecret") == "" {
		return raw
	}
	q.Set("clientSecret", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// send performs the request and returns the body of a 2xx response. Non-2xx
// responses become *HTTPError.
func (c *Client) send(ctx context.Context, r apiRequest) ([]byte, error) {
	status, body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(status, r.action, body)
	}
	return body, nil
}

// do performs the request and returns the status code and body whatever
// the status.
func (c *Client) do(ctx context.Context, r apiRequest) (int, []byte, error) {
	if err := c.ready(); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r.action, r.query), r.body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range r.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redactURL(uerr.URL)
		}
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, bodyBytes, nil
}

// call sends the request and unwraps the response envelope.
func (c *Client) call(ctx context.Context, r apiRequest) (*Response, error) {
	body, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	return c.envelope.unwrap(r.action, body)
}

// get issues a GET and decodes the envelope payload into target.
func (c *Client) get(ctx context.Context, action string, query url.Values, target any) (*Response, error) {
	resp, err := c.call(ctx, apiRequest{method: http.MethodGet, action: action, query: query})
	if err != nil {
		return nil, err
	}
	if err := resp.decodeData(target); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return resp, nil
}

// postJSON marshals payload and POSTs it.
func (c *Client) postJSON(ctx context.Context, action string, query url.Values, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.postRaw(ctx, action, query, body, "application/json")
}

func (c *Client) postRaw(ctx context.Context, action string, query url.Values, body []byte, contentType string) (*Response, error) {
	return c.call(ctx, apiRequest{
		method: http.MethodPost,
		action: action,
		query:  query,
		body:   bytes.NewReader(body),
		header: http.Header{"Content-Type": {contentType}},
	})
}

// mutate POSTs payload and reports whether the service applied it.
func (c *Client) mutate(ctx context.Context, action string, query url.Values, payload any) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	resp, err := c.postJSON(ctx, action, query, payload)
	if err != nil {
		return false, err
	}
	return resp.Affected(), nil
}

// ============================================================================
// Multipart forms
// ============================================================================

// formField is one ordered multipart field.
type formField struct {
	name, value string
}

// filePart is an optional file attached to a multipart form.
type filePart struct {
	field, filename string
	r               io.Reader
}

// encodeMultipart writes fields (and an optional file) as multipart/form-data.
func encodeMultipart(fields []formField, file *filePart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", f.name, err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file.r); err != nil {
			return nil, "", fmt.Errorf("failed to copy file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// postForm POSTs a multipart form with optional extra headers.
func (c *Client) postForm(ctx context.Context, action string, query url.Values, fields []formField, file *filePart, header http.Header) (*Response, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	body, contentType, err := encodeMultipart(fields, file)
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	for k, v := range header {
		h[k] = v
	}
	h.Set("Content-Type", contentType)

	return c.call(ctx, apiRequest{
		method: http.MethodPost,
		action: action,
		query:  query,
		body:   bytes.NewReader(body),
		header: h,
	})
}

// postURLEncoded POSTs an application/x-www-form-urlencoded body and returns
// the status and raw response. Token endpoints don't use the envelope.
func (c *Client) postURLEncoded(ctx context.Context, action string, data url.Values) (int, []byte, error) {
	return c.do(ctx, apiRequest{
		method: http.MethodPost,
		action: action,
		body:   strings.NewReader(data.Encode()),
		header: http.Header{"Content-Type": {"application/x-www-form-urlencoded"}},
	})
}
