package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")

	ErrTodoNotFound = errors.New("todo not found")
	// ErrForbidden is returned when a todo exists but belongs to another user.
	ErrForbidden = errors.New("todo belongs to another user")

	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrMailDeliveryFailed = errors.New("reset mail could not be sent")
)
