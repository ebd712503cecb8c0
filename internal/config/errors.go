package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrMissingTokenSignKey indicates that no session token signing secret
	// was configured. The server must not start without one.
	ErrMissingTokenSignKey = errors.New("token sign key is not configured")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive token duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unknown driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMailConfigs indicates an unknown mail provider or missing
	// provider settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidRateLimitConfigs indicates a configured Redis URL without a
	// positive request budget or window.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
)
