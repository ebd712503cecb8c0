package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/models"
)

type logMailAdapter struct {
	logger *logger.Logger
}

// NewLogMailAdapter returns a [MailAdapter] that only logs the recipient
// and subject. The body carries the reset secret and is never logged.
func NewLogMailAdapter(logger *logger.Logger) MailAdapter {
	return &logMailAdapter{logger: logger}
}

func (a *logMailAdapter) Send(ctx context.Context, mail models.Mail) error {
	if mail.To == "" {
		return ErrEmptyRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*logMailAdapter.Send").
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Msg("mail delivery skipped by log provider")

	return nil
}
