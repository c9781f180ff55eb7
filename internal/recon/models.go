// Package recon persists analysis batches ("runs") and executes them in
// the background: discover shoot folders under the requested paths,
// reconcile them against the schedule store, and keep the per-folder
// results so the operator can review and apply cut counts later.
package recon

import "time"

const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is one user-initiated analysis batch over a set of dropped
// folder paths.
type Run struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	Paths      []string  `json:"paths"`
	Error      string    `json:"error,omitempty"`
	Analyzed   int       `json:"analyzed"`
	Matched    int       `json:"matched"`
	Unmatched  int       `json:"unmatched"`
	Mismatched int       `json:"mismatched"`
	Applied    bool      `json:"applied"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FolderRecord is the persisted analysis outcome for one shoot folder
// within a run.
type FolderRecord struct {
	ID             string   `json:"id"`
	RunID          string   `json:"run_id"`
	FolderPath     string   `json:"folder_path"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	Couple         string   `json:"couple,omitempty"`
	CutsFromName   *int     `json:"cuts_from_name,omitempty"`
	TotalCount     int      `json:"total_count"`
	RawCount       int      `json:"raw_count"`
	JPEGCount      int      `json:"jpeg_count"`
	FinalCutCount  int      `json:"final_cut_count"`
	ScheduleID     string   `json:"schedule_id,omitempty"`
	HasMismatch    bool     `json:"has_mismatch"`
	CutDiscrepancy bool     `json:"cut_discrepancy"`
	MismatchFiles  []string `json:"mismatch_files,omitempty"`
}

// Matched reports whether the folder was reconciled to a schedule.
func (f FolderRecord) Matched() bool { return f.ScheduleID != "" }
