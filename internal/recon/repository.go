package recon

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	ListPendingRuns(ctx context.Context) ([]*Run, error)
	UpdateRunStatus(ctx context.Context, id, status, errorMsg string) error
	UpdateRunSummary(ctx context.Context, id string, analyzed, matched, unmatched, mismatched int) error
	MarkRunApplied(ctx context.Context, id string) error

	CreateFolderRecord(ctx context.Context, rec *FolderRecord) error
	GetFolderRecords(ctx context.Context, runID string) ([]*FolderRecord, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const runColumns = `id, status, paths, error, analyzed, matched, unmatched, mismatched, applied, created_at, updated_at`

func (r *SQLiteRepository) CreateRun(ctx context.Context, run *Run) error {
	paths, err := json.Marshal(run.Paths)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Status, string(paths), nullString(run.Error),
		run.Analyzed, run.Matched, run.Unmatched, run.Mismatched, boolToInt(run.Applied),
		run.CreatedAt.Format(time.RFC3339), run.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRuns(rows)
}

func (r *SQLiteRepository) ListPendingRuns(ctx context.Context) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs WHERE status = ? ORDER BY created_at
	`, RunStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRuns(rows)
}

func (r *SQLiteRepository) UpdateRunStatus(ctx context.Context, id, status, errorMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, error = ?, updated_at = ? WHERE id = ?
	`, status, nullString(errorMsg), time.Now().Format(time.RFC3339), id)
	return err
}

func (r *SQLiteRepository) UpdateRunSummary(ctx context.Context, id string, analyzed, matched, unmatched, mismatched int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE runs SET analyzed = ?, matched = ?, unmatched = ?, mismatched = ?, updated_at = ?
		WHERE id = ?
	`, analyzed, matched, unmatched, mismatched, time.Now().Format(time.RFC3339), id)
	return err
}

// MarkRunApplied flips the applied flag exactly once. Returns
// sql.ErrNoRows when the run is missing or already applied, so
// concurrent apply attempts cannot both claim the run.
func (r *SQLiteRepository) MarkRunApplied(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE runs SET applied = 1, updated_at = ? WHERE id = ? AND applied = 0
	`, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepository) CreateFolderRecord(ctx context.Context, rec *FolderRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	var mismatchFiles any
	if len(rec.MismatchFiles) > 0 {
		b, err := json.Marshal(rec.MismatchFiles)
		if err != nil {
			return err
		}
		mismatchFiles = string(b)
	}
	var cutsFromName any
	if rec.CutsFromName != nil {
		cutsFromName = *rec.CutsFromName
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO run_folders (
			id, run_id, folder_path, date, time, couple, cuts_from_name,
			total_count, raw_count, jpeg_count, final_cut_count,
			schedule_id, has_mismatch, cut_discrepancy, mismatch_files
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.RunID, rec.FolderPath, rec.Date, rec.Time, nullString(rec.Couple), cutsFromName,
		rec.TotalCount, rec.RawCount, rec.JPEGCount, rec.FinalCutCount,
		nullString(rec.ScheduleID), boolToInt(rec.HasMismatch), boolToInt(rec.CutDiscrepancy), mismatchFiles)
	return err
}

func (r *SQLiteRepository) GetFolderRecords(ctx context.Context, runID string) ([]*FolderRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, folder_path, date, time, couple, cuts_from_name,
		       total_count, raw_count, jpeg_count, final_cut_count,
		       schedule_id, has_mismatch, cut_discrepancy, mismatch_files
		FROM run_folders WHERE run_id = ? ORDER BY folder_path
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*FolderRecord
	for rows.Next() {
		var rec FolderRecord
		var couple, scheduleID, mismatchFiles sql.NullString
		var cutsFromName sql.NullInt64
		var hasMismatch, cutDiscrepancy int

		err := rows.Scan(&rec.ID, &rec.RunID, &rec.FolderPath, &rec.Date, &rec.Time,
			&couple, &cutsFromName,
			&rec.TotalCount, &rec.RawCount, &rec.JPEGCount, &rec.FinalCutCount,
			&scheduleID, &hasMismatch, &cutDiscrepancy, &mismatchFiles)
		if err != nil {
			return nil, err
		}

		rec.Couple = couple.String
		rec.ScheduleID = scheduleID.String
		rec.HasMismatch = hasMismatch == 1
		rec.CutDiscrepancy = cutDiscrepancy == 1
		if cutsFromName.Valid {
			n := int(cutsFromName.Int64)
			rec.CutsFromName = &n
		}
		if mismatchFiles.Valid && mismatchFiles.String != "" {
			if err := json.Unmarshal([]byte(mismatchFiles.String), &rec.MismatchFiles); err != nil {
				return nil, err
			}
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func scanRun(row *sql.Row) (*Run, error) {
	var run Run
	var paths string
	var errMsg sql.NullString
	var applied int
	var createdAt, updatedAt string

	err := row.Scan(&run.ID, &run.Status, &paths, &errMsg,
		&run.Analyzed, &run.Matched, &run.Unmatched, &run.Mismatched, &applied,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	finishRun(&run, paths, errMsg, applied, createdAt, updatedAt)
	return &run, nil
}

func collectRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		var run Run
		var paths string
		var errMsg sql.NullString
		var applied int
		var createdAt, updatedAt string

		err := rows.Scan(&run.ID, &run.Status, &paths, &errMsg,
			&run.Analyzed, &run.Matched, &run.Unmatched, &run.Mismatched, &applied,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		finishRun(&run, paths, errMsg, applied, createdAt, updatedAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func finishRun(run *Run, paths string, errMsg sql.NullString, applied int, createdAt, updatedAt string) {
	json.Unmarshal([]byte(paths), &run.Paths)
	run.Error = errMsg.String
	run.Applied = applied == 1
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	run.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
