// Package workers runs the background jobs of the server on a cron
// schedule.
package workers

import "context"

// Worker is a single scheduled job.
//
// Run must return once ctx is done. A returned error is logged and the job
// runs again at its next scheduled time.
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}
