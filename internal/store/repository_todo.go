package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/models"
	sq "github.com/Masterminds/squirrel"
)

var todoColumns = []string{
	"todo_id",
	"user_id",
	"title",
	"description",
	"completed",
	"created_at",
	"updated_at",
}

var returningTodo = "RETURNING " + strings.Join(todoColumns, ", ")

type todoRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTodoRepository constructs a [TodoRepository] over the "todos" table.
func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	logger.Debug().Msg("creating todo repository")
	return &todoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *todoRepository) ListTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(todoColumns...).
		From(models.Todo{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "todo_id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error selecting todos")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error scanning todo")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*todoRepository.ListTodos").Msg("error iterating todos")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return todos, nil
}

func (r *todoRepository) GetTodo(ctx context.Context, todoID string) (models.Todo, error) {
	query, args, err := r.db.builder.
		Select(todoColumns...).
		From(models.Todo{}.TableName()).
		Where(sq.Eq{"todo_id": todoID}).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*todoRepository.GetTodo", query, args)
}

func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	query, args, err := r.db.builder.
		Insert(todo.TableName()).
		Columns(todoColumns...).
		Values(todo.TodoID, todo.UserID, todo.Title, todo.Description, todo.Completed, dbTime(todo.CreatedAt), dbTime(todo.UpdatedAt)).
		Suffix(returningTodo).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*todoRepository.CreateTodo", query, args)
}

// UpdateTodo builds the SET list from the non-nil fields of update.
func (r *todoRepository) UpdateTodo(ctx context.Context, todoID, ownerID string, update models.TodoUpdate, updatedAt time.Time) (models.Todo, error) {
	builder := r.db.builder.
		Update(models.Todo{}.TableName()).
		Set("updated_at", dbTime(updatedAt))

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}

	query, args, err := builder.
		Where(sq.Eq{"todo_id": todoID, "user_id": ownerID}).
		Suffix(returningTodo).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*todoRepository.UpdateTodo", query, args)
}

func (r *todoRepository) ToggleTodo(ctx context.Context, todoID, ownerID string, updatedAt time.Time) (models.Todo, error) {
	query, args, err := r.db.builder.
		Update(models.Todo{}.TableName()).
		Set("completed", sq.Expr("NOT completed")).
		Set("updated_at", dbTime(updatedAt)).
		Where(sq.Eq{"todo_id": todoID, "user_id": ownerID}).
		Suffix(returningTodo).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*todoRepository.ToggleTodo", query, args)
}

func (r *todoRepository) DeleteTodo(ctx context.Context, todoID, ownerID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.Todo{}.TableName()).
		Where(sq.Eq{"todo_id": todoID, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*todoRepository.DeleteTodo").Msg("error deleting todo")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

func (r *todoRepository) queryOne(ctx context.Context, funcName, query string, args []any) (models.Todo, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing todo query")
		return models.Todo{}, r.mapError(err)
	}

	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		log.Err(err).Str("func", funcName).Msg("error scanning todo")
		return models.Todo{}, r.mapError(err)
	}

	return todo, nil
}

func (r *todoRepository) mapError(err error) error {
	if r.db.errorClassificator != nil && r.db.errorClassificator.Classify(err) == ForeignKeyViolation {
		return ErrUserNotFound
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var (
		todo      models.Todo
		createdAt nullTime
		updatedAt nullTime
	)

	err := row.Scan(
		&todo.TodoID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Todo{}, err
	}

	todo.CreatedAt = createdAt.Time
	todo.UpdatedAt = updatedAt.Time

	return todo, nil
}
