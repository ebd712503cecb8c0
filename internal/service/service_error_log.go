package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/store"
	"github.com/MKhiriev/go-todo-list/internal/utils"
	"github.com/MKhiriev/go-todo-list/models"
)

// errorLogWriteTimeout bounds a single error log insert.
const errorLogWriteTimeout = 5 * time.Second

type errorLogService struct {
	errorLogRepository store.ErrorLogRepository
	idGenerator        utils.IDGenerator

	now    func() time.Time
	logger *logger.Logger
}

func NewErrorLogService(errorLogRepository store.ErrorLogRepository, logger *logger.Logger) ErrorLogService {
	return &errorLogService{
		errorLogRepository: errorLogRepository,
		idGenerator:        utils.NewUUIDGenerator(),
		now:                time.Now,
		logger:             logger,
	}
}

// Record writes errorLog best-effort. Failures are only reported to the
// process logger.
func (s *errorLogService) Record(ctx context.Context, errorLog models.ErrorLog) {
	if errorLog.ErrorLogID == "" {
		errorLog.ErrorLogID = s.idGenerator.Generate()
	}
	if errorLog.CreatedAt.IsZero() {
		errorLog.CreatedAt = s.now()
	}

	// the failing request may already be cancelled
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorLogWriteTimeout)
	defer cancel()

	if err := s.errorLogRepository.SaveErrorLog(writeCtx, errorLog); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*errorLogService.Record").
			Int("status", errorLog.Status).
			Str("url", errorLog.URL).
			Msg("error log could not be written")
	}
}
