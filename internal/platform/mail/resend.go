package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

// NewResendMailer builds a mailer on top of httpClient.
func NewResendMailer(httpClient *http.Client, apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewCustomClient(httpClient, apiKey),
		from:   from,
	}
}

// Send posts one email.
func (m *ResendMailer) Send(ctx context.Context, to, subject, text, html string) error {
	msg, err := newMessage(m.from, to, subject, text, html)
	if err != nil {
		return err
	}

	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	slog.Debug("mail sent", "provider", "resend", "id", resp.Id, "to", msg.To)
	return nil
}
