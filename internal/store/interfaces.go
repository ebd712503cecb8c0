package store

//go:generate mockgen -destination=../mock/store_mock.go -package=mock github.com/MKhiriev/go-todo-list/internal/store UserRepository,TodoRepository,ErrorLogRepository

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-list/models"
)

// UserRepository persists user identities and their password reset state.
type UserRepository interface {
	// CreateUser inserts a new user. A duplicate email yields ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail returns ErrUserNotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUserByID returns ErrUserNotFound when no user has the id.
	FindUserByID(ctx context.Context, userID string) (models.User, error)
	// SetResetToken stores a reset token hash and expiry on the user. No
	// other column is written. It returns ErrUserNotFound when no user has
	// the id.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt, updatedAt time.Time) error
	// ClearResetToken removes the reset token of the user only while it still
	// equals tokenHash, so a newer token or a completed redemption is never
	// undone. A token that no longer matches is not an error.
	ClearResetToken(ctx context.Context, userID, tokenHash string, updatedAt time.Time) error
	// ResetPassword atomically replaces the password hash of the user whose
	// reset token hash equals tokenHash and whose reset expiry is after now,
	// clearing both reset fields. It returns ErrInvalidResetToken when no
	// user matches.
	ResetPassword(ctx context.Context, tokenHash, passwordHash string, now time.Time) (models.User, error)
	// ClearExpiredResetTokens clears reset fields whose expiry is not after
	// now and returns the number of affected users.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

// TodoRepository persists todo items. Ownership checks beyond the owner
// filter on mutations belong to the service layer.
type TodoRepository interface {
	// ListTodos returns the user's todos, newest first.
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	// GetTodo returns ErrTodoNotFound when no todo has the id.
	GetTodo(ctx context.Context, todoID string) (models.Todo, error)
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	// UpdateTodo applies the non-nil fields of update to the todo owned by
	// ownerID and sets updated_at.
	UpdateTodo(ctx context.Context, todoID, ownerID string, update models.TodoUpdate, updatedAt time.Time) (models.Todo, error)
	// ToggleTodo flips the completion flag in a single statement.
	ToggleTodo(ctx context.Context, todoID, ownerID string, updatedAt time.Time) (models.Todo, error)
	DeleteTodo(ctx context.Context, todoID, ownerID string) error
}

// ErrorLogRepository appends diagnostic error records.
type ErrorLogRepository interface {
	SaveErrorLog(ctx context.Context, errorLog models.ErrorLog) error
}
