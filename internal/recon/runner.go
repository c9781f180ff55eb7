package recon

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Runner polls for pending analysis runs and executes them one at a
// time, keeping long directory scans off the API request path.
type Runner struct {
	service      *Service
	repo         Repository
	logger       *slog.Logger
	pollInterval time.Duration
	running      atomic.Bool
}

func NewRunner(service *Service, repo Repository, logger *slog.Logger) *Runner {
	return &Runner{
		service:      service,
		repo:         repo,
		logger:       logger,
		pollInterval: 2 * time.Second,
	}
}

func (r *Runner) Start(ctx context.Context) {
	if r.running.Swap(true) {
		return
	}

	if r.logger != nil {
		r.logger.Info("run executor started")
	}

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if r.logger != nil {
				r.logger.Info("run executor stopping")
			}
			r.running.Store(false)
			return
		case <-ticker.C:
			r.processNextRun(ctx)
		}
	}
}

func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// SetPollInterval overrides the default poll interval. Must be called
// before Start.
func (r *Runner) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.pollInterval = d
	}
}

func (r *Runner) processNextRun(ctx context.Context) {
	runs, err := r.repo.ListPendingRuns(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("failed to list pending runs", "error", err)
		}
		return
	}
	if len(runs) == 0 {
		return
	}

	run := runs[0]
	if err := r.service.ExecuteRun(ctx, run); err != nil {
		if ctx.Err() != nil {
			r.repo.UpdateRunStatus(context.Background(), run.ID, RunStatusFailed, "cancelled")
			return
		}
		if r.logger != nil {
			r.logger.Error("run execution failed", "run_id", run.ID, "error", err)
		}
	}
}
