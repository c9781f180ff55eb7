// Package analyze orchestrates the folder engine for one batch:
// discover shoot folders under the dropped roots, count their files,
// match them against the schedule list and assemble the report the
// caller uses to drive cut-count updates.
package analyze

import (
	"context"
	"log/slog"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/discover"
	"github.com/shootsync/shootsync-agent/internal/foldername"
	"github.com/shootsync/shootsync-agent/internal/fstree"
	"github.com/shootsync/shootsync-agent/internal/match"
	"github.com/shootsync/shootsync-agent/internal/scan"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

// FolderResult is the analysis outcome for one discovered shoot folder.
//
// ScheduleID is empty when no schedule qualified or when a RAW/JPEG
// mismatch was detected: an incomplete delivery must never update a
// schedule's recorded cut count, so a mismatch forcibly unmatches the
// folder.
type FolderResult struct {
	FolderPath     string           `json:"folder_path"`
	Meta           *foldername.Meta `json:"meta"`
	Counts         scan.Result      `json:"counts"`
	FinalCutCount  int              `json:"final_cut_count"`
	ScheduleID     string           `json:"schedule_id,omitempty"`
	CutDiscrepancy bool             `json:"cut_discrepancy,omitempty"`
}

// Matched reports whether a schedule id was attached.
func (r FolderResult) Matched() bool { return r.ScheduleID != "" }

// Summary aggregates one batch. A batch that discovered nothing
// (Analyzed == 0) is distinguishable from one where every folder
// failed to match.
type Summary struct {
	Analyzed   int `json:"analyzed"`
	Matched    int `json:"matched"`
	Unmatched  int `json:"unmatched"`
	Mismatched int `json:"mismatched"`
}

// Update is one proposed (schedule, cut count) write.
type Update struct {
	ScheduleID string `json:"schedule_id"`
	Cuts       int    `json:"cuts"`
}

// Report is the full outcome of one batch run.
type Report struct {
	Folders []FolderResult `json:"folders"`
	Summary Summary        `json:"summary"`
}

// Updates returns the proposed cut-count writes for the matched
// folders, in result order.
func (r *Report) Updates() []Update {
	var updates []Update
	for _, f := range r.Folders {
		if f.Matched() {
			updates = append(updates, Update{ScheduleID: f.ScheduleID, Cuts: f.FinalCutCount})
		}
	}
	return updates
}

// Analyzer ties the finder and scanner together. It holds no state
// across Analyze calls.
type Analyzer struct {
	finder  *discover.Finder
	scanner *scan.Scanner
	logger  *slog.Logger
}

func New(tables classify.Tables, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		finder:  discover.NewFinder(tables, logger),
		scanner: scan.NewScanner(tables, logger),
		logger:  logger,
	}
}

// Analyze runs one batch over the dropped roots against the given
// schedule list. Errors are returned only for context cancellation;
// unreadable folders degrade to zero counts.
func (a *Analyzer) Analyze(ctx context.Context, roots []fstree.Dir, schedules []*schedule.Schedule) (*Report, error) {
	found, err := a.finder.Discover(ctx, roots)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, f := range found {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		counts, err := a.scanner.Scan(ctx, f.Dir)
		if err != nil {
			return nil, err
		}

		res := FolderResult{
			FolderPath:    f.Path,
			Meta:          f.Meta,
			Counts:        counts,
			FinalCutCount: counts.TotalCount,
		}
		if f.Meta.CutsFromName != nil {
			// The count stated in the folder name takes precedence over
			// the scanned count; a disagreement is surfaced but does not
			// block matching.
			res.FinalCutCount = *f.Meta.CutsFromName
			res.CutDiscrepancy = *f.Meta.CutsFromName != counts.TotalCount
		}

		if !counts.HasMismatch {
			if sc := match.Find(f.Meta, schedules); sc != nil {
				res.ScheduleID = sc.ID
			}
		}

		report.Summary.Analyzed++
		if counts.HasMismatch {
			report.Summary.Mismatched++
		}
		if res.Matched() {
			report.Summary.Matched++
		} else {
			report.Summary.Unmatched++
		}
		report.Folders = append(report.Folders, res)

		if a.logger != nil {
			a.logger.Info("folder analyzed",
				"folder", f.Path,
				"total", counts.TotalCount,
				"mismatch", counts.HasMismatch,
				"matched", res.Matched(),
			)
		}
	}
	return report, nil
}
