package schedule

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shootsync/shootsync-agent/internal/db"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewService(NewRepository(database.Conn()), nil)
}

func TestCreate_NormalizesAndPersists(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sc, err := svc.Create(ctx, &Schedule{
		Date:   "2025.09.13",
		Time:   "11시30분",
		Couple: "최다솔 안연주",
		Cuts:   200,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sc.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if sc.Time != "11:30" {
		t.Errorf("Time = %q, want canonical 11:30", sc.Time)
	}

	got, err := svc.Get(ctx, sc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Couple != "최다솔 안연주" || got.Cuts != 200 {
		t.Errorf("Get() = %+v, want persisted record", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		sc   Schedule
	}{
		{"bad date", Schedule{Date: "2025-09-13", Time: "11:30"}},
		{"bad time", Schedule{Date: "2025.09.13", Time: "noon"}},
		{"negative cuts", Schedule{Date: "2025.09.13", Time: "11:30", Cuts: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, &tc.sc); err == nil {
				t.Errorf("Create(%+v) should return an error", tc.sc)
			}
		})
	}
}

func TestList_OrderedByDateAndTime(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, s := range []Schedule{
		{Date: "2025.09.14", Time: "10:00"},
		{Date: "2025.09.13", Time: "14:00"},
		{Date: "2025.09.13", Time: "11:30"},
	} {
		sc := s
		if _, err := svc.Create(ctx, &sc); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(all))
	}
	wantTimes := []string{"11:30", "14:00", "10:00"}
	for i, want := range wantTimes {
		if all[i].Time != want {
			t.Errorf("List()[%d].Time = %q, want %q", i, all[i].Time, want)
		}
	}

	byDate, err := svc.ListByDate(ctx, "2025.09.13")
	if err != nil {
		t.Fatalf("ListByDate() error = %v", err)
	}
	if len(byDate) != 2 || byDate[0].Time != "11:30" {
		t.Errorf("ListByDate() = %d records starting %q, want 2 starting 11:30",
			len(byDate), byDate[0].Time)
	}
}

func TestUpdate_PreservesCreatedAt(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sc, err := svc.Create(ctx, &Schedule{Date: "2025.09.13", Time: "11:30", Couple: "최다솔 안연주"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, &Schedule{
		ID: sc.ID, Date: "2025.09.13", Time: "14시", Couple: "최다솔 안연주", Cuts: 350,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Time != "14:00" || updated.Cuts != 350 {
		t.Errorf("Update() = time %q cuts %d, want 14:00 / 350", updated.Time, updated.Cuts)
	}
	// Stored timestamps have second precision.
	if !updated.CreatedAt.Equal(sc.CreatedAt.Truncate(time.Second)) {
		t.Errorf("Update() changed CreatedAt from %v to %v", sc.CreatedAt, updated.CreatedAt)
	}

	if _, err := svc.Update(ctx, &Schedule{ID: "missing", Date: "2025.09.13", Time: "11:30"}); err == nil {
		t.Error("Update() on unknown id should return an error")
	}
}

func TestDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	sc, err := svc.Create(ctx, &Schedule{Date: "2025.09.13", Time: "11:30"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, sc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := svc.Get(ctx, sc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after delete = %+v, want nil", got)
	}
}

func TestApplyCuts_SkipsMissingSchedules(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, &Schedule{Date: "2025.09.13", Time: "11:30"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, err := svc.Create(ctx, &Schedule{Date: "2025.09.13", Time: "14:00"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	applied, err := svc.ApplyCuts(ctx, []CutUpdate{
		{ScheduleID: a.ID, Cuts: 480},
		{ScheduleID: "missing", Cuts: 99},
		{ScheduleID: b.ID, Cuts: 320},
	})
	if err != nil {
		t.Fatalf("ApplyCuts() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	gotA, _ := svc.Get(ctx, a.ID)
	gotB, _ := svc.Get(ctx, b.ID)
	if gotA.Cuts != 480 || gotB.Cuts != 320 {
		t.Errorf("cuts = %d/%d, want 480/320", gotA.Cuts, gotB.Cuts)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	repo := svc.repo

	v, err := repo.GetConfig(ctx, "scan_paths")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if v != "" {
		t.Errorf("GetConfig() on empty store = %q, want empty", v)
	}

	if err := repo.SetConfig(ctx, "scan_paths", "/mnt/deliveries"); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	if err := repo.SetConfig(ctx, "scan_paths", "/mnt/archive"); err != nil {
		t.Fatalf("SetConfig() overwrite error = %v", err)
	}

	v, err = repo.GetConfig(ctx, "scan_paths")
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if v != "/mnt/archive" {
		t.Errorf("GetConfig() = %q, want /mnt/archive", v)
	}
}
