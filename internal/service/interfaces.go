package service

import (
	"context"

	"github.com/MKhiriev/go-todo-list/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/MKhiriev/go-todo-list/internal/service AuthService,PasswordResetService,TodoService,ErrorLogService

type AuthService interface {
	SignUp(ctx context.Context, request models.SignUpRequest) (models.User, models.Token, error)
	SignIn(ctx context.Context, request models.SignInRequest) (models.User, models.Token, error)
	Me(ctx context.Context, userID string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authenticate verifies tokenString and loads the user it was issued to.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, request models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) (models.Token, error)
}

// TodoService operates on the todos of one user. Every method taking a
// todoID reports [ErrTodoNotFound] before [ErrForbidden].
type TodoService interface {
	ListTodos(ctx context.Context, userID string) ([]models.Todo, error)
	GetTodo(ctx context.Context, userID, todoID string) (models.Todo, error)
	CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error)
	UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) (models.Todo, error)
	ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error)
	DeleteTodo(ctx context.Context, userID, todoID string) error
}

// ErrorLogService stores diagnostic records. Record never fails.
type ErrorLogService interface {
	Record(ctx context.Context, errorLog models.ErrorLog)
}

type HealthService interface {
	Ping(ctx context.Context) error
}

type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}

// TodoServiceWrapper defines middleware composition for TodoService.
// Implementations wrap an existing TodoService to add behavior such as
// validation.
type TodoServiceWrapper interface {
	Wrap(TodoService) TodoService
}

// AuthServiceWrapper defines middleware composition for AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}
