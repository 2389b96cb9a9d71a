package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func TestLogMailer_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := m.Send(context.Background(), " a@b.com ", "Email Verification OTP", "code 123456", "")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"a@b.com"`)
	assert.Contains(t, buf.String(), "Email Verification OTP")
}

func TestLogMailer_NoRecipient(t *testing.T) {
	t.Parallel()

	err := NewLogMailer(nil).Send(context.Background(), "  ", "s", "t", "")

	assert.ErrorIs(t, err, ErrNoRecipient)
}

// newResendServer starts a fake Resend API and returns a mailer pointed at it.
func newResendServer(t *testing.T, status int, captured *map[string]any) *ResendMailer {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"email_1"}`))
		} else {
			_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
		}
	}))
	t.Cleanup(srv.Close)

	m := NewResendMailer(&http.Client{Timeout: 5 * time.Second}, "re_test", "RentEase <no-reply@rentease.app>")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	m.client.BaseURL = base
	return m
}

func TestResendMailer_Send(t *testing.T) {
	t.Parallel()

	var body map[string]any
	m := newResendServer(t, http.StatusOK, &body)

	err := m.Send(context.Background(), "user@example.com", "Password Reset OTP", "text body", "<p>html</p>")

	require.NoError(t, err)
	assert.Equal(t, "RentEase <no-reply@rentease.app>", body["from"])
	assert.Equal(t, []any{"user@example.com"}, body["to"])
	assert.Equal(t, "Password Reset OTP", body["subject"])
	assert.Equal(t, "text body", body["text"])
	assert.Equal(t, "<p>html</p>", body["html"])
}

func TestResendMailer_APIError(t *testing.T) {
	t.Parallel()

	m := newResendServer(t, http.StatusUnprocessableEntity, nil)

	err := m.Send(context.Background(), "user@example.com", "s", "t", "")

	assert.Error(t, err)
}

func TestBuildMsg(t *testing.T) {
	t.Parallel()

	out, err := buildMsg(Message{
		From:    "no-reply@rentease.app",
		To:      "user@example.com",
		Subject: "Email Verification OTP",
		Text:    "plain",
		HTML:    "<b>rich</b>",
	})
	require.NoError(t, err)

	rcpts, err := out.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"user@example.com"}, rcpts)
	assert.Equal(t, []string{"Email Verification OTP"}, out.GetGenHeader(gomail.HeaderSubject))

	var buf bytes.Buffer
	_, err = out.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "multipart/alternative")
	assert.Contains(t, buf.String(), "plain")
}

func TestBuildMsg_InvalidAddress(t *testing.T) {
	t.Parallel()

	_, err := buildMsg(Message{From: "not an address", To: "user@example.com"})

	assert.Error(t, err)
}

func TestNewSMTPMailer(t *testing.T) {
	t.Parallel()

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", m.from)

	_, err = NewSMTPMailer(SMTPConfig{Port: 587})
	assert.Error(t, err)
}
