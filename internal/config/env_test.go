// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_ENV":             "production",
		"APP_LOG_LEVEL":       "debug",
		"APP_TOKEN_SIGN_KEY":  "jwt_secret",
		"APP_TOKEN_ISSUER":    "test_issuer",
		"APP_TOKEN_DURATION":  "168h",
		"APP_RESET_TOKEN_TTL": "10m",
		"APP_FRONTEND_URL":    "https://todo.example.com",

		"SERVER_ADDRESS":          "localhost:5000",
		"SERVER_GRPC_ADDRESS":     "localhost:9090",
		"SERVER_READ_TIMEOUT":     "5s",
		"SERVER_WRITE_TIMEOUT":    "6s",
		"SERVER_SHUTDOWN_TIMEOUT": "7s",
		"SERVER_ALLOWED_ORIGINS":  "https://a.example.com,https://b.example.com",

		"STORAGE_DB_DRIVER":         "sqlite",
		"STORAGE_DB_DATABASE_URI":   "file:todos.db",
		"STORAGE_DB_MAX_OPEN_CONNS": "4",

		"MAIL_PROVIDER":      "smtp",
		"MAIL_FROM":          "noreply@example.com",
		"MAIL_SMTP_HOST":     "smtp.example.com",
		"MAIL_SMTP_PORT":     "2525",
		"MAIL_SMTP_USERNAME": "mailer",
		"MAIL_SMTP_PASSWORD": "mailer-pass",
		"MAIL_API_URL":       "https://mail.example.com/send",
		"MAIL_API_KEY":       "key",
		"MAIL_TIMEOUT":       "3s",

		"RATE_LIMIT_REDIS_URL": "redis://localhost:6379/0",
		"RATE_LIMIT_REQUESTS":  "5",
		"RATE_LIMIT_WINDOW":    "30s",

		"WORKERS_RESET_SWEEP_SCHEDULE": "@every 1m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "production", cfg.App.Env)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 168*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.App.ResetTokenTTL)
	assert.Equal(t, "https://todo.example.com", cfg.App.FrontendURL)

	assert.Equal(t, "localhost:5000", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 6*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 7*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:todos.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 4, cfg.Storage.DB.MaxOpenConns)

	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, "noreply@example.com", cfg.Mail.From)
	assert.Equal(t, SMTP{Host: "smtp.example.com", Port: 2525, Username: "mailer", Password: "mailer-pass"}, cfg.Mail.SMTP)
	assert.Equal(t, "https://mail.example.com/send", cfg.Mail.APIURL)
	assert.Equal(t, "key", cfg.Mail.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Mail.Timeout)

	assert.Equal(t, "redis://localhost:6379/0", cfg.RateLimit.RedisURL)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)

	assert.Equal(t, "@every 1m", cfg.Workers.ResetSweepSchedule)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Zero(t, cfg.App.TokenDuration)
	assert.False(t, cfg.App.IsProduction())
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-duration")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "many")

	cfg := &StructuredConfig{}
	assert.Error(t, parseEnv(cfg))
}

func TestParseEnv_AllowedOriginsCleaned(t *testing.T) {
	t.Setenv("SERVER_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com/")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
}

func TestParseEnv_BlankOriginsKeepDefaults(t *testing.T) {
	t.Setenv("SERVER_ALLOWED_ORIGINS", " , ")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Nil(t, cfg.Server.AllowedOrigins)
}
