// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// A missing token sign key is reported as [ErrMissingTokenSignKey]; the
// caller treats every validation error as fatal.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.App.TokenSignKey) == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.App.TokenDuration <= 0 || cfg.App.ResetTokenTTL <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs)
	}

	if err := cfg.Mail.validate(); err != nil {
		return err
	}

	if cfg.RateLimit.RedisURL != "" && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}

func (m Mail) validate() error {
	switch m.Provider {
	case MailProviderLog:
		return nil
	case MailProviderSMTP:
		if m.SMTP.Host == "" || m.SMTP.Port <= 0 || m.From == "" {
			return fmt.Errorf("%w: smtp provider needs host, port and from address", ErrInvalidMailConfigs)
		}
		return nil
	case MailProviderHTTP:
		if m.APIURL == "" {
			return fmt.Errorf("%w: http provider needs an api url", ErrInvalidMailConfigs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidMailConfigs, m.Provider)
	}
}
