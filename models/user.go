package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUIDv7 string).
	UserID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier. Uniqueness is case-sensitive
	// as stored.
	Email string `json:"email"`

	// PasswordHash is the argon2id PHC string of the user's password.
	// It is never serialized and never logged.
	PasswordHash string `json:"-"`

	// ResetTokenHash is the SHA-256 hex digest of a pending password reset
	// secret, nil when no reset is pending.
	ResetTokenHash *string `json:"-"`

	// ResetExpiresAt is the moment the pending reset secret stops being
	// redeemable, nil when no reset is pending.
	ResetExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// SignUpRequest is the body of POST /api/auth/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the body of POST /api/auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the reset secret from the URL and the new
// password from the body of PUT /api/auth/reset-password/{resetToken}.
type ResetPasswordRequest struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}
