// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound delivery of transactional mail.
//
// The primary abstraction is [MailAdapter], which decouples the password
// reset flow from the delivery mechanism. Three implementations ship with
// the package, selected by [NewMailAdapter] from the mail configuration:
//   - log: writes recipient and subject to the process logger (development);
//   - smtp: plain SMTP submission with PLAIN auth;
//   - http: JSON POST to a transactional-mail HTTP API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] regardless of provider.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-todo-list/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_adapter_mock.go -package=mock

// MailAdapter delivers a single message. Implementations must honour ctx
// cancellation and must not retry; the caller decides what a failed
// delivery means.
type MailAdapter interface {
	Send(ctx context.Context, mail models.Mail) error
}
