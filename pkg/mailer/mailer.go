// Package mailer delivers HTML email over SMTP.
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/mroy35034/woo-com-server/pkg/utils"
)

// Sender sends one HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTPSender(config utils.EmailConfig, log *zap.Logger) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	// gomail has no context support, run the dial in the background and honour ctx
	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.log.Warn("Email send abandoned", zap.String("to", to), zap.Error(ctx.Err()))
		return ctx.Err()
	case err := <-done:
		if err != nil {
			s.log.Error("Failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
			return fmt.Errorf("send email to %s: %w", to, err)
		}
	}

	s.log.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
