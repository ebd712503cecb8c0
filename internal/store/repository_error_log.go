package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/models"
)

type errorLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewErrorLogRepository constructs an [ErrorLogRepository] over the
// append-only "error_logs" table.
func NewErrorLogRepository(db *DB, logger *logger.Logger) ErrorLogRepository {
	logger.Debug().Msg("creating error log repository")
	return &errorLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *errorLogRepository) SaveErrorLog(ctx context.Context, errorLog models.ErrorLog) error {
	var userID any
	if errorLog.UserID != "" {
		userID = errorLog.UserID
	}

	query, args, err := r.db.builder.
		Insert(errorLog.TableName()).
		Columns("error_log_id", "message", "stack", "status", "method", "url", "user_id", "created_at").
		Values(errorLog.ErrorLogID, errorLog.Message, errorLog.Stack, errorLog.Status, errorLog.Method, errorLog.URL, userID, dbTime(errorLog.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return nil
}
