package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

type todoService struct {
	todoRepository store.TodoRepository
	idGenerator    utils.IDGenerator

	now    func() time.Time
	logger *logger.Logger
}

func NewTodoService(todoRepository store.TodoRepository, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		idGenerator:    utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *todoService) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	todos, err := s.todoRepository.ListTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos failed: %w", err)
	}
	return todos, nil
}

func (s *todoService) GetTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	return s.ownedTodo(ctx, userID, todoID)
}

func (s *todoService) CreateTodo(ctx context.Context, userID string, request models.CreateTodoRequest) (models.Todo, error) {
	now := s.now()

	todo, err := s.todoRepository.CreateTodo(ctx, models.Todo{
		TodoID:      s.idGenerator.Generate(),
		UserID:      userID,
		Title:       strings.TrimSpace(request.Title),
		Description: strings.TrimSpace(request.Description),
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Todo{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoService.CreateTodo").Msg("todo creation failed")
		return models.Todo{}, fmt.Errorf("todo creation failed: %w", err)
	}

	return todo, nil
}

// UpdateTodo applies the provided fields only. Completed may be set
// directly here; the owner never changes.
func (s *todoService) UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) (models.Todo, error) {
	if _, err := s.ownedTodo(ctx, userID, todoID); err != nil {
		return models.Todo{}, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		update.Description = &description
	}

	todo, err := s.todoRepository.UpdateTodo(ctx, todoID, userID, update, s.now())
	if err != nil {
		return models.Todo{}, s.mapMutationError(ctx, "*todoService.UpdateTodo", err)
	}

	return todo, nil
}

func (s *todoService) ToggleTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	if _, err := s.ownedTodo(ctx, userID, todoID); err != nil {
		return models.Todo{}, err
	}

	todo, err := s.todoRepository.ToggleTodo(ctx, todoID, userID, s.now())
	if err != nil {
		return models.Todo{}, s.mapMutationError(ctx, "*todoService.ToggleTodo", err)
	}

	return todo, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if _, err := s.ownedTodo(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.todoRepository.DeleteTodo(ctx, todoID, userID); err != nil {
		return s.mapMutationError(ctx, "*todoService.DeleteTodo", err)
	}

	return nil
}

// ownedTodo loads the todo and checks ownership: missing todos are
// reported before foreign ones.
func (s *todoService) ownedTodo(ctx context.Context, userID, todoID string) (models.Todo, error) {
	todo, err := s.todoRepository.GetTodo(ctx, todoID)
	if errors.Is(err, store.ErrTodoNotFound) {
		return models.Todo{}, ErrTodoNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*todoService.ownedTodo").Str("todo_id", todoID).Msg("todo lookup failed")
		return models.Todo{}, fmt.Errorf("todo lookup failed: %w", err)
	}

	if todo.UserID != userID {
		logger.FromContext(ctx).Warn().
			Str("func", "*todoService.ownedTodo").
			Str("todo_id", todoID).
			Str("user_id", userID).
			Msg("access to a todo of another user")
		return models.Todo{}, ErrForbidden
	}

	return todo, nil
}

// mapMutationError handles a todo deleted between the ownership check and
// the mutation.
func (s *todoService) mapMutationError(ctx context.Context, funcName string, err error) error {
	if errors.Is(err, store.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("todo mutation failed")
	return fmt.Errorf("todo mutation failed: %w", err)
}
