package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-todo-list/internal/config"
	"github.com/MKhiriev/go-todo-list/internal/logger"
	"github.com/MKhiriev/go-todo-list/internal/store"
)

// jobTimeout bounds a single run of a job.
const jobTimeout = time.Minute

type Workers struct {
	cron    *cron.Cron
	workers []Worker

	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
}

// NewWorkers schedules the server's jobs. Nothing runs until Start.
func NewWorkers(cfg config.Workers, storages *store.Storages, logger *logger.Logger) (*Workers, error) {
	w := newWorkers(logger)

	if err := w.schedule(cfg.ResetSweepSchedule, NewResetTokenSweeper(storages.UserRepository, logger)); err != nil {
		return nil, err
	}

	return w, nil
}

func newWorkers(logger *logger.Logger) *Workers {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workers{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

func (w *Workers) schedule(expr string, worker Worker) error {
	if _, err := w.cron.AddFunc(expr, func() { w.runJob(worker) }); err != nil {
		return fmt.Errorf("%w %q for %s: %w", ErrInvalidSchedule, expr, worker.Name(), err)
	}

	w.workers = append(w.workers, worker)
	w.logger.Info().Str("worker", worker.Name()).Str("schedule", expr).Msg("worker scheduled")
	return nil
}

func (w *Workers) runJob(worker Worker) {
	ctx, cancel := context.WithTimeout(w.ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := worker.Run(ctx); err != nil {
		w.logger.Err(err).Str("worker", worker.Name()).Msg("worker run failed")
		return
	}
	w.logger.Debug().Str("worker", worker.Name()).Dur("duration", time.Since(start)).Msg("worker run finished")
}

// RunOnce runs every worker immediately, one after another.
func (w *Workers) RunOnce() {
	for _, worker := range w.workers {
		w.runJob(worker)
	}
}

// Start begins the schedule in the background.
func (w *Workers) Start() {
	w.cron.Start()
	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
}

// Stop cancels running jobs and waits for them to return.
func (w *Workers) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
	w.logger.Info().Msg("workers stopped")
}
