// Package twilio implements the voicemail alert notifier over the Twilio
// REST API.
package twilio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/dialplan/dialplan/internal/logging"
)

// Notifier sends SMS messages through the Twilio Messages API. It satisfies
// flow.Notifier.
type Notifier struct {
	client *twilio.RestClient
	logger *slog.Logger
}

// NewNotifier builds a notifier from REST credentials.
func NewNotifier(accountSID, authToken string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		logger: logger,
	}
}

// SendSMS dispatches one message. The underlying client does not take a
// context; ctx is accepted to satisfy the notifier contract.
func (n *Notifier) SendSMS(ctx context.Context, from, to, body string) error {
	params := &api.CreateMessageParams{}
	params.SetFrom(from)
	params.SetTo(to)
	params.SetBody(body)

	msg, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	n.logger.Info("sms dispatched", "to", to, "sid", sid)

	return nil
}
