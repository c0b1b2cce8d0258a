package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	from   string
	dialer dialer
}

var _ service.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg config.Config) (*SMTPMailer, error) {
	if cfg.Mail.Host == "" {
		return nil, errors.New("smtp host has not config")
	}
	if cfg.Mail.From == "" {
		return nil, errors.New("mail from address has not config")
	}
	d := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)
	return &SMTPMailer{from: cfg.Mail.From, dialer: d}, nil
}

func (s *SMTPMailer) Send(ctx context.Context, m service.Mail) error {
	if len(m.To) == 0 {
		return errors.New("mail has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer.DialAndSend(buildMessage(s.from, m)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func buildMessage(from string, m service.Mail) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.To...)
	if m.ReplyTo != "" {
		msg.SetHeader("Reply-To", m.ReplyTo)
	}
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.Body)
	return msg
}
