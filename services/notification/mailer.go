package notification

import (
	"context"
	"fmt"

	"velour/config"

	"gopkg.in/gomail.v2"
)

// GomailMailer delivers email over SMTP.
type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailMailer builds a Mailer from the configured SMTP settings.
func NewGomailMailer() *GomailMailer {
	cfg := config.AppConfig
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &GomailMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   from,
	}
}

// Send delivers one message. gomail has no context support, so delivery runs
// in a goroutine and the ctx deadline bounds how long we wait for it.
func (m *GomailMailer) Send(ctx context.Context, msg EmailMessage) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(gm)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp delivery failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp delivery timed out: %w", ctx.Err())
	}
}
