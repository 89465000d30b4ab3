package casdoorsdk_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
)

func TestSendNotifications(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	email := casdoorsdk.Email{
		Title:     "Welcome",
		Content:   "Hello Alice",
		Sender:    "Casdoor",
		Receivers: []string{"alice@example.com"},
	}
	require.NoError(t, f.client.SendEmail(ctx, email))

	sms := casdoorsdk.Sms{Content: "code 123456", Receivers: []string{"+61400000000"}}
	require.NoError(t, f.client.SendSms(ctx, sms))

	require.Equal(t, []any{email, sms}, f.fake.Outbox())

	var sent map[string]any
	require.NoError(t, f.lastRequest(t, "send-email").JSON(&sent))
	require.Equal(t, "Welcome", sent["title"])
}

func TestSendNotificationsRequireReceivers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var apiErr *casdoorsdk.APIError

	err := f.client.SendEmail(context.Background(), casdoorsdk.Email{Title: "t", Content: "c"})
	require.ErrorAs(t, err, &apiErr)

	err = f.client.SendSms(context.Background(), casdoorsdk.Sms{Content: "c"})
	require.ErrorAs(t, err, &apiErr)

	require.Empty(t, f.fake.Outbox())
}
