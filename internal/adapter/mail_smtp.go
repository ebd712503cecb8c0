package adapter

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/models"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailAdapter struct {
	addr string
	from string
	auth smtp.Auth

	sendMail sendMailFunc
	logger   *logger.Logger
}

// NewSMTPMailAdapter returns a [MailAdapter] submitting plain text mail to
// cfg.SMTP.Host. PLAIN auth is used when a username is configured.
func NewSMTPMailAdapter(cfg config.Mail, logger *logger.Logger) MailAdapter {
	var auth smtp.Auth
	if cfg.SMTP.Username != "" {
		auth = smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	}

	return &smtpMailAdapter{
		addr:     net.JoinHostPort(cfg.SMTP.Host, strconv.Itoa(cfg.SMTP.Port)),
		from:     cfg.From,
		auth:     auth,
		sendMail: smtp.SendMail,
		logger:   logger,
	}
}

func (a *smtpMailAdapter) Send(ctx context.Context, mail models.Mail) error {
	if mail.To == "" {
		return ErrEmptyRecipient
	}

	msg := buildMessage(a.from, mail)

	// smtp.SendMail has no context support; run it aside and stop waiting
	// when ctx is done.
	done := make(chan error, 1)
	go func() {
		done <- a.sendMail(a.addr, a.auth, a.from, []string{mail.To}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*smtpMailAdapter.Send").Msg("smtp delivery failed")
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

func buildMessage(from string, mail models.Mail) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + mail.To + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(mail.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(mail.Text, "\n", "\r\n"))
	return []byte(b.String())
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
