package recon

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/shootsync/shootsync-agent/internal/analyze"
	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/fstree"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

// Service creates and executes analysis runs and applies their
// proposed cut counts to the schedule store.
type Service struct {
	repo      Repository
	schedules *schedule.Service
	tables    classify.Tables
	logger    *slog.Logger
}

func NewService(repo Repository, schedules *schedule.Service, tables classify.Tables, logger *slog.Logger) *Service {
	return &Service{repo: repo, schedules: schedules, tables: tables, logger: logger}
}

// StartRun validates the requested paths and queues a pending run for
// the background runner.
func (s *Service) StartRun(ctx context.Context, paths []string) (*Run, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one folder path is required")
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", p)
		}
	}

	now := time.Now()
	run := &Run{
		ID:        uuid.NewString(),
		Status:    RunStatusPending,
		Paths:     paths,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("analysis run queued", "run_id", run.ID, "paths", len(paths))
	}
	return run, nil
}

func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	return s.repo.GetRun(ctx, id)
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	return s.repo.ListRuns(ctx, limit)
}

func (s *Service) GetFolderRecords(ctx context.Context, runID string) ([]*FolderRecord, error) {
	return s.repo.GetFolderRecords(ctx, runID)
}

// ExecuteRun performs the analysis for one run: open the requested
// folders, load the schedule list, run the engine and persist the
// per-folder outcomes. Unopenable paths degrade to a logged warning so
// one bad path does not fail the whole batch.
func (s *Service) ExecuteRun(ctx context.Context, run *Run) error {
	// Claim the run before doing any work: if the status write fails the
	// run must stay pending rather than execute twice on the next poll.
	if err := s.repo.UpdateRunStatus(ctx, run.ID, RunStatusRunning, ""); err != nil {
		return fmt.Errorf("mark run running: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("analysis run started", "run_id", run.ID)
	}

	var roots []fstree.Dir
	for _, p := range run.Paths {
		dir, err := fstree.OpenDir(p)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("folder skipped", "run_id", run.ID, "path", p, "error", err)
			}
			continue
		}
		roots = append(roots, dir)
	}

	schedules, err := s.schedules.List(ctx)
	if err != nil {
		s.repo.UpdateRunStatus(ctx, run.ID, RunStatusFailed, err.Error())
		return err
	}

	report, err := analyze.New(s.tables, s.logger).Analyze(ctx, roots, schedules)
	if err != nil {
		s.repo.UpdateRunStatus(ctx, run.ID, RunStatusFailed, err.Error())
		return err
	}

	for _, f := range report.Folders {
		rec := &FolderRecord{
			RunID:          run.ID,
			FolderPath:     f.FolderPath,
			Date:           f.Meta.Date,
			Time:           f.Meta.Time,
			Couple:         f.Meta.Couple,
			CutsFromName:   f.Meta.CutsFromName,
			TotalCount:     f.Counts.TotalCount,
			RawCount:       f.Counts.RawCount,
			JPEGCount:      f.Counts.JPEGCount,
			FinalCutCount:  f.FinalCutCount,
			ScheduleID:     f.ScheduleID,
			HasMismatch:    f.Counts.HasMismatch,
			CutDiscrepancy: f.CutDiscrepancy,
			MismatchFiles:  f.Counts.MismatchFiles,
		}
		if err := s.repo.CreateFolderRecord(ctx, rec); err != nil {
			s.repo.UpdateRunStatus(ctx, run.ID, RunStatusFailed, err.Error())
			return err
		}
	}

	sum := report.Summary
	if err := s.repo.UpdateRunSummary(ctx, run.ID, sum.Analyzed, sum.Matched, sum.Unmatched, sum.Mismatched); err != nil {
		return err
	}
	if err := s.repo.UpdateRunStatus(ctx, run.ID, RunStatusCompleted, ""); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("analysis run completed", "run_id", run.ID,
			"analyzed", sum.Analyzed, "matched", sum.Matched,
			"unmatched", sum.Unmatched, "mismatched", sum.Mismatched)
	}
	return nil
}

// ApplyRun writes the cut counts a completed run proposed for its
// matched folders. A run is applied at most once.
func (s *Service) ApplyRun(ctx context.Context, runID string) (int, error) {
	run, err := s.repo.GetRun(ctx, runID)
	if err != nil {
		return 0, err
	}
	if run == nil {
		return 0, fmt.Errorf("run not found")
	}
	if run.Status != RunStatusCompleted {
		return 0, fmt.Errorf("run is %s, only completed runs can be applied", run.Status)
	}
	if run.Applied {
		return 0, fmt.Errorf("run already applied")
	}

	// Claim the run before writing anything: the applied flag is a
	// compare-and-set, so of two concurrent apply requests only one
	// gets past this point.
	if err := s.repo.MarkRunApplied(ctx, runID); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("run already applied")
		}
		return 0, err
	}

	records, err := s.repo.GetFolderRecords(ctx, runID)
	if err != nil {
		return 0, err
	}

	var updates []schedule.CutUpdate
	for _, rec := range records {
		if rec.Matched() {
			updates = append(updates, schedule.CutUpdate{ScheduleID: rec.ScheduleID, Cuts: rec.FinalCutCount})
		}
	}

	return s.schedules.ApplyCuts(ctx, updates)
}
