package di

import (
	"log/slog"
	"time"

	authusecase "rentease_backend/internal/feature/auth/usecase"
	"rentease_backend/internal/platform/config"
	platformhttp "rentease_backend/internal/platform/http"
	"rentease_backend/internal/platform/mail"
)

// mailTimeout は Resend API 呼び出しのタイムアウトです。
const mailTimeout = 10 * time.Second

// NewMailer は設定に応じて Mailer を選択します。
// RESEND_API_KEY > SMTP_HOST > ログ出力のみ、の優先順です。
func NewMailer(cfg *config.Config) (authusecase.Mailer, error) {
	switch {
	case cfg.ResendAPIKey != "":
		slog.Info("mailer selected", "backend", "resend")
		return mail.NewResendMailer(platformhttp.NewHTTPClient(mailTimeout), cfg.ResendAPIKey, cfg.MailFrom), nil
	case cfg.SMTPHost != "":
		m, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("mailer selected", "backend", "smtp", "host", cfg.SMTPHost)
		return m, nil
	default:
		if cfg.IsProduction() {
			slog.Warn("no mail backend configured; OTP codes will only be logged")
		}
		return mail.NewLogMailer(slog.Default()), nil
	}
}
