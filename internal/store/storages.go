package store

import "github.com/MKhiriev/go-todo-list/internal/logger"

// Storages aggregates the repositories built on one [DB] handle.
type Storages struct {
	UserRepository     UserRepository
	TodoRepository     TodoRepository
	ErrorLogRepository ErrorLogRepository
}

// NewStorages constructs every repository over db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		TodoRepository:     NewTodoRepository(db, log),
		ErrorLogRepository: NewErrorLogRepository(db, log),
	}
}
