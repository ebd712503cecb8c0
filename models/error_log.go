package models

import "time"

// ErrorLog is an append-only diagnostic record written when a request ends
// in a server error or a recovered panic. It is never read back by the
// application.
type ErrorLog struct {
	ErrorLogID string
	Message    string
	Stack      string
	Status     int
	Method     string
	URL        string
	// UserID is empty when the failing request was not authenticated.
	UserID    string
	CreatedAt time.Time
}

// TableName returns the name of the database table
// associated with the ErrorLog model.
func (e ErrorLog) TableName() string {
	return "error_logs"
}
