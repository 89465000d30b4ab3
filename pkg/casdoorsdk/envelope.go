package casdoorsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// affectedMarker is what mutation endpoints put in data on success.
const affectedMarker = "Affected"

// Response is the canonical response envelope. Data holds the payload after
// unwrapping, whatever envelope shape the service used.
type Response struct {
	Status string          `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Data2  json.RawMessage `json:"data2"`
}

// Affected reports whether a mutation was applied.
func (r *Response) Affected() bool {
	var s string
	if err := json.Unmarshal(r.Data, &s); err != nil {
		return false
	}
	return s == affectedMarker
}

// IsNull reports whether the payload is absent or JSON null.
func (r *Response) IsNull() bool {
	d := bytes.TrimSpace(r.Data)
	return len(d) == 0 || bytes.Equal(d, []byte("null"))
}

// decodeData unmarshals the payload into target. A null payload leaves
// target untouched.
func (r *Response) decodeData(target any) error {
	if target == nil || r.IsNull() {
		return nil
	}
	if err := json.Unmarshal(r.Data, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// unwrap turns a 2xx body into a canonical Response. A status "error"
// envelope becomes *APIError.
func (e Envelope) unwrap(action string, body []byte) (*Response, error) {
	switch e {
	case EnvelopeBare:
		return &Response{Status: "ok", Data: json.RawMessage(body)}, nil

	case EnvelopeNested:
		resp, err := decodeEnvelope(action, body)
		if err != nil {
			return nil, err
		}
		var inner struct {
			Data json.RawMessage `json:"data"`
		}
		if bytes.HasPrefix(bytes.TrimSpace(resp.Data), []byte("{")) {
			if err := json.Unmarshal(resp.Data, &inner); err == nil && inner.Data != nil {
				resp.Data = inner.Data
			}
		}
		return resp, nil

	default:
		return decodeEnvelope(action, body)
	}
}

func decodeEnvelope(action string, body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode envelope: %w", action, err)
	}
	if resp.Status == "error" {
		return nil, &APIError{Action: action, Msg: resp.Msg}
	}
	return &resp, nil
}
