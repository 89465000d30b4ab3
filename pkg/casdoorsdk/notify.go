package casdoorsdk

import "context"

// Email is a message sent through the application's email provider.
type Email struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Sender    string   `json:"sender"`
	Receivers []string `json:"receivers"`
}

// Sms is a message sent through the application's SMS provider.
type Sms struct {
	Content   string   `json:"content"`
	Receivers []string `json:"receivers"`
}

// SendEmail sends email. Service-side failures are returned as *APIError.
func (c *Client) SendEmail(ctx context.Context, email Email) error {
	_, err := c.postJSON(ctx, "send-email", nil, email)
	return err
}

// SendSms sends sms. Receivers are phone numbers including country code.
func (c *Client) SendSms(ctx context.Context, sms Sms) error {
	_, err := c.postJSON(ctx, "send-sms", nil, sms)
	return err
}
