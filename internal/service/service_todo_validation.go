package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-list/internal/validators"
	"github.com/MKhiriev/go-todo-list/models"
)

// TodoValidationService validates todo input before handing it to the
// wrapped TodoService.
type TodoValidationService struct {
	inner     TodoService
	validator validators.Validator
}

func NewTodoValidationService() TodoServiceWrapper {
	return &TodoValidationService{
		validator: validators.NewTodoValidator(),
	}
}

func (v *TodoValidationService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	return v.inner.ListTodos(ctx, userID)
}

func (v *TodoValidationService) GetTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	return v.inner.GetTodo(ctx, userID, todoID)
}

func (v *TodoValidationService) CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Todo{}, fmt.Errorf("error during todo validation before saving: %w", err)
	}

	return v.inner.CreateTodo(ctx, userID, request)
}

func (v *TodoValidationService) UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) (models.Todo, error) {
	if !update.IsEmpty() {
		if err := v.validator.Validate(ctx, update); err != nil {
			return models.Todo{}, fmt.Errorf("error during todo validation before update: %w", err)
		}
	}

	return v.inner.UpdateTodo(ctx, userID, todoID, update)
}

func (v *TodoValidationService) ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	return v.inner.ToggleTodo(ctx, userID, todoID)
}

func (v *TodoValidationService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return v.inner.DeleteTodo(ctx, userID, todoID)
}

func (v *TodoValidationService) Wrap(wrapped TodoService) TodoService {
	v.inner = wrapped
	return v
}
