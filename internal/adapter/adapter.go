package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
)

// NewMailAdapter builds the adapter selected by cfg.Provider.
func NewMailAdapter(cfg config.Mail, logger *logger.Logger) (MailAdapter, error) {
	switch cfg.Provider {
	case config.MailProviderLog, "":
		return NewLogMailAdapter(logger), nil
	case config.MailProviderSMTP:
		return NewSMTPMailAdapter(cfg, logger), nil
	case config.MailProviderHTTP:
		return NewHTTPMailAdapter(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMailProvider, cfg.Provider)
	}
}
