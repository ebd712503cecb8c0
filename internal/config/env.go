// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the APP_, STORAGE_DB_, SERVER_, MAIL_,
// RATE_LIMIT_ and WORKERS_ variables and CONFIG.
//
// SERVER_ALLOWED_ORIGINS entries are trimmed and blank entries dropped, so
// "https://a.example.com, ,https://b.example.com/" yields two origins.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	cfg.Server.AllowedOrigins = cleanOrigins(cfg.Server.AllowedOrigins)
	return nil
}

// cleanOrigins returns nil when nothing is left so an unset list never
// overrides the defaults during the merge.
func cleanOrigins(origins []string) []string {
	var cleaned []string
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			cleaned = append(cleaned, origin)
		}
	}
	return cleaned
}
