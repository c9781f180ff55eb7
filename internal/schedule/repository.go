package schedule

import (
	"context"
	"database/sql"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Schedule) error
	Get(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context) ([]*Schedule, error)
	ListByDate(ctx context.Context, date string) ([]*Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	UpdateCuts(ctx context.Context, id string, cuts int) error
	Delete(ctx context.Context, id string) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const scheduleColumns = `id, date, time, location, couple, contact, cuts, price, manager, brand, memo, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, s *Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedules (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Date, s.Time, nullString(s.Location), nullString(s.Couple), nullString(s.Contact),
		s.Cuts, s.Price, nullString(s.Manager), nullString(s.Brand), nullString(s.Memo),
		s.CreatedAt.Format(time.RFC3339), s.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Schedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+scheduleColumns+` FROM schedules WHERE id = ?
	`, id)
	return scanSchedule(row)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+` FROM schedules ORDER BY date, time, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *SQLiteRepository) ListByDate(ctx context.Context, date string) ([]*Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+` FROM schedules WHERE date = ? ORDER BY time, created_at
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (r *SQLiteRepository) Update(ctx context.Context, s *Schedule) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE schedules
		SET date = ?, time = ?, location = ?, couple = ?, contact = ?,
		    cuts = ?, price = ?, manager = ?, brand = ?, memo = ?, updated_at = ?
		WHERE id = ?
	`, s.Date, s.Time, nullString(s.Location), nullString(s.Couple), nullString(s.Contact),
		s.Cuts, s.Price, nullString(s.Manager), nullString(s.Brand), nullString(s.Memo),
		s.UpdatedAt.Format(time.RFC3339), s.ID)
	return err
}

func (r *SQLiteRepository) UpdateCuts(ctx context.Context, id string, cuts int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedules SET cuts = ?, updated_at = ? WHERE id = ?
	`, cuts, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*Schedule, error) {
	var s Schedule
	var location, couple, contact, manager, brand, memo sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&s.ID, &s.Date, &s.Time, &location, &couple, &contact,
		&s.Cuts, &s.Price, &manager, &brand, &memo, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.Location = location.String
	s.Couple = couple.String
	s.Contact = contact.String
	s.Manager = manager.String
	s.Brand = brand.String
	s.Memo = memo.String
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}

func collectSchedules(rows *sql.Rows) ([]*Schedule, error) {
	var schedules []*Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
