// Package mail provides transactional mail senders for OTP delivery.
package mail

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrNoRecipient is returned when Send is called without an address.
var ErrNoRecipient = errors.New("mail: recipient is required")

// Message is one outgoing mail.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

func newMessage(from, to, subject, text, html string) (Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return Message{}, ErrNoRecipient
	}
	return Message{From: from, To: to, Subject: subject, Text: text, HTML: html}, nil
}

// LogMailer writes messages to the log instead of delivering them.
// It is the development fallback when no provider is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a LogMailer; a nil logger uses slog.Default.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(ctx context.Context, to, subject, text, html string) error {
	msg, err := newMessage("", to, subject, text, html)
	if err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "mail not delivered (log mailer)", "to", msg.To, "subject", msg.Subject, "text", msg.Text)
	return nil
}
