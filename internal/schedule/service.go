package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/shootsync/shootsync-agent/internal/foldername"
)

var datePattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Service validates and persists schedule records, and applies batch
// cut-count updates proposed by the analysis engine.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create normalizes the record, assigns an id and timestamps, and
// stores it. Date must be YYYY.MM.DD; time accepts any spelling the
// folder parser understands and is stored canonical HH:MM.
func (s *Service) Create(ctx context.Context, sc *Schedule) (*Schedule, error) {
	if err := normalize(sc); err != nil {
		return nil, err
	}

	now := time.Now()
	sc.ID = NewID()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	if err := s.repo.Create(ctx, sc); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("schedule created", "schedule_id", sc.ID, "date", sc.Date, "time", sc.Time)
	}
	return sc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Schedule, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Schedule, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]*Schedule, error) {
	return s.repo.ListByDate(ctx, date)
}

// Update replaces the mutable fields of an existing record.
func (s *Service) Update(ctx context.Context, sc *Schedule) (*Schedule, error) {
	existing, err := s.repo.Get(ctx, sc.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("schedule not found")
	}
	if err := normalize(sc); err != nil {
		return nil, err
	}

	sc.CreatedAt = existing.CreatedAt
	sc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ApplyCuts writes the proposed cut counts. Each update is applied
// independently: a missing schedule is logged and skipped so one stale
// proposal does not block the rest of the batch. Returns the number of
// records updated.
func (s *Service) ApplyCuts(ctx context.Context, updates []CutUpdate) (int, error) {
	applied := 0
	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		if err := s.repo.UpdateCuts(ctx, u.ScheduleID, u.Cuts); err != nil {
			if s.logger != nil {
				s.logger.Warn("cut update skipped", "schedule_id", u.ScheduleID, "error", err)
			}
			continue
		}
		applied++
	}
	if s.logger != nil {
		s.logger.Info("cut counts applied", "proposed", len(updates), "applied", applied)
	}
	return applied, nil
}

func normalize(sc *Schedule) error {
	if !datePattern.MatchString(sc.Date) {
		return fmt.Errorf("invalid date %q, want YYYY.MM.DD", sc.Date)
	}
	sc.Time = foldername.NormalizeTime(sc.Time)
	if !timePattern.MatchString(sc.Time) {
		return fmt.Errorf("invalid time %q, want HH:MM", sc.Time)
	}
	if sc.Cuts < 0 {
		return fmt.Errorf("cuts must not be negative")
	}
	return nil
}
