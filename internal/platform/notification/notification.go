// Package notification delivers transactional email for the intake API. The
// only template today is the patient verification code; delivery is
// fire-and-forget so a mail outage never blocks the verification flow.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog"
)

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text, html string) error
}

// SMTPSender sends email through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) SendEmail(_ context.Context, to, subject, text, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// LogSender writes outbound email to the log instead of delivering it. Used
// in development when no SMTP relay is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendEmail(_ context.Context, to, subject, text, _ string) error {
	s.log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("text", text).
		Msg("email (log sender)")
	return nil
}

// Template is a reusable notification template rendered with {{key}} data.
type Template struct {
	Subject string
	Text    string
	HTML    string
}

// Render substitutes {{key}} placeholders in all three parts.
func (t Template) Render(data map[string]string) (subject, text, html string) {
	subject, text, html = t.Subject, t.Text, t.HTML
	for key, value := range data {
		placeholder := "{{" + key + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		text = strings.ReplaceAll(text, placeholder, value)
		html = strings.ReplaceAll(html, placeholder, value)
	}
	return subject, text, html
}

var verificationTemplate = Template{
	Subject: "Código de verificación - MediSense AI",
	Text:    "Tu código de verificación es: {{code}}. Este código expira en 1 minuto.",
	HTML: `<div style="font-family: Arial; padding: 15px;">
  <h2 style="color:#0078ff;">MediSense AI</h2>
  <p>Tu código de verificación es:</p>
  <h1 style="background:#f0f4ff;padding:10px;border-radius:8px;text-align:center;">{{code}}</h1>
  <p>Este código expira en <b>1 minuto</b>.</p>
</div>`,
}

// Mailer renders templates and dispatches them through an EmailSender.
// Delivery failures are logged and swallowed.
type Mailer struct {
	sender EmailSender
	log    zerolog.Logger
}

func NewMailer(sender EmailSender, log zerolog.Logger) *Mailer {
	return &Mailer{sender: sender, log: log}
}

// DispatchVerificationCode emails a verification code to the patient. The
// code stays valid for verification even when delivery fails.
func (m *Mailer) DispatchVerificationCode(ctx context.Context, to, code string) {
	subject, text, html := verificationTemplate.Render(map[string]string{"code": code})
	if err := m.sender.SendEmail(ctx, to, subject, text, html); err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("verification email delivery failed")
		return
	}
	m.log.Info().Str("to", to).Msg("verification email sent")
}
