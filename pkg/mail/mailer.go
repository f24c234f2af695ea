package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"signals-hub.backend/pkg/logger"
)

// Mailer is the outbound notification sink. Delivery is fire-and-forget;
// callers never block a request on SMTP.
type Mailer interface {
	SendActivation(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// SMTPConfig holds SMTP connection settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPMailer sends mail through an SMTP relay using gomail
type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

var dialAndSend = func(d *gomail.Dialer, m ...*gomail.Message) error {
	return d.DialAndSend(m...)
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendActivation sends the account activation link
func (m *SMTPMailer) SendActivation(ctx context.Context, to, token string) error {
	body := fmt.Sprintf("Welcome! Activate your account: %s/api/v1/auth/activate/%s", m.cfg.BaseURL, token)
	return m.send(ctx, to, "Activate your account", body)
}

// SendPasswordReset sends the password reset link
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	body := fmt.Sprintf("A password reset was requested for your account: %s/reset-password?token=%s\nIf this wasn't you, ignore this mail.", m.cfg.BaseURL, token)
	return m.send(ctx, to, "Password reset request", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := dialAndSend(m.dialer, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// NopMailer logs instead of sending. Used when SMTP is not configured
// (local development, tests).
type NopMailer struct{}

func (NopMailer) SendActivation(ctx context.Context, to, token string) error {
	logger.Info(ctx, "mail suppressed: activation token issued")
	return nil
}

func (NopMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	logger.Info(ctx, "mail suppressed: password reset token issued")
	return nil
}
