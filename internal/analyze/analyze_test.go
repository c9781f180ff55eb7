package analyze

import (
	"context"
	"testing"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/fstree"
	"github.com/shootsync/shootsync-agent/internal/schedule"
)

func newAnalyzer() *Analyzer {
	return New(classify.Default(), nil)
}

func run(t *testing.T, roots []fstree.Dir, schedules []*schedule.Schedule) *Report {
	t.Helper()
	report, err := newAnalyzer().Analyze(context.Background(), roots, schedules)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	return report
}

func TestAnalyze_MatchedFolder(t *testing.T) {
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
			fstree.NewMemFile("DSC_0001.ARW"),
			fstree.NewMemFile("DSC_0001.jpg"),
			fstree.NewMemFile("DSC_0002.ARW"),
			fstree.NewMemFile("DSC_0002.jpg"),
		),
	)
	schedules := []*schedule.Schedule{
		{ID: "s1", Date: "2025.09.13", Time: "11:30", Couple: "최다솔 안연주"},
	}

	report := run(t, []fstree.Dir{root}, schedules)
	if len(report.Folders) != 1 {
		t.Fatalf("got %d folders, want 1", len(report.Folders))
	}
	f := report.Folders[0]
	if f.ScheduleID != "s1" {
		t.Errorf("ScheduleID = %q, want s1", f.ScheduleID)
	}
	if f.FinalCutCount != 2 {
		t.Errorf("FinalCutCount = %d, want 2", f.FinalCutCount)
	}
	if report.Summary != (Summary{Analyzed: 1, Matched: 1}) {
		t.Errorf("Summary = %+v, want 1 analyzed, 1 matched", report.Summary)
	}

	updates := report.Updates()
	if len(updates) != 1 || updates[0] != (Update{ScheduleID: "s1", Cuts: 2}) {
		t.Errorf("Updates() = %v, want [{s1 2}]", updates)
	}
}

func TestAnalyze_MismatchForcesUnmatch(t *testing.T) {
	// Date, time and couple all qualify, but the RAW/JPEG sets differ:
	// the folder must come back unmatched.
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
			fstree.NewMemFile("DSC_0001.ARW"),
			fstree.NewMemFile("DSC_0001.jpg"),
			fstree.NewMemFile("DSC_0002.ARW"),
		),
	)
	schedules := []*schedule.Schedule{
		{ID: "s1", Date: "2025.09.13", Time: "11:30", Couple: "최다솔 안연주"},
	}

	report := run(t, []fstree.Dir{root}, schedules)
	f := report.Folders[0]
	if f.ScheduleID != "" {
		t.Errorf("ScheduleID = %q, want empty: mismatch must invalidate matching", f.ScheduleID)
	}
	if !f.Counts.HasMismatch {
		t.Error("Counts.HasMismatch = false, want true")
	}
	if report.Summary != (Summary{Analyzed: 1, Unmatched: 1, Mismatched: 1}) {
		t.Errorf("Summary = %+v, want 1 analyzed, 1 unmatched, 1 mismatched", report.Summary)
	}
	if updates := report.Updates(); len(updates) != 0 {
		t.Errorf("Updates() = %v, want none", updates)
	}
}

func TestAnalyze_CutsFromNamePrecedence(t *testing.T) {
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주) - 작가(480)",
			fstree.NewMemFile("DSC_0001.jpg"),
			fstree.NewMemFile("DSC_0002.jpg"),
		),
	)
	schedules := []*schedule.Schedule{
		{ID: "s1", Date: "2025.09.13", Time: "11:30", Couple: "최다솔 안연주"},
	}

	report := run(t, []fstree.Dir{root}, schedules)
	f := report.Folders[0]
	if f.FinalCutCount != 480 {
		t.Errorf("FinalCutCount = %d, want 480 (name overrides scanned count)", f.FinalCutCount)
	}
	if !f.CutDiscrepancy {
		t.Error("CutDiscrepancy = false, want true: scanned 2 but name says 480")
	}
	if f.ScheduleID != "s1" {
		t.Errorf("ScheduleID = %q, want s1: discrepancy does not block matching", f.ScheduleID)
	}
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("random folder"),
	)

	report := run(t, []fstree.Dir{root}, nil)
	if report.Summary.Analyzed != 0 {
		t.Errorf("Analyzed = %d, want 0", report.Summary.Analyzed)
	}
	if len(report.Folders) != 0 {
		t.Errorf("got %d folders, want 0", len(report.Folders))
	}
}

func TestAnalyze_UnmatchedWithoutSchedules(t *testing.T) {
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
			fstree.NewMemFile("DSC_0001.jpg"),
		),
	)

	report := run(t, []fstree.Dir{root}, nil)
	if report.Summary != (Summary{Analyzed: 1, Unmatched: 1}) {
		t.Errorf("Summary = %+v, want 1 analyzed, 1 unmatched", report.Summary)
	}
}

func TestAnalyze_MultipleFolders(t *testing.T) {
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
			fstree.NewMemFile("a.jpg"),
		),
		fstree.NewMemDir("2025.09.14 14시 (김철수 이영희)",
			fstree.NewMemFile("b.ARW"),
			fstree.NewMemFile("c.jpg"), // mismatch
		),
		fstree.NewMemDir("2025.09.15 10:00",
			fstree.NewMemFile("d.jpg"),
		),
	)
	schedules := []*schedule.Schedule{
		{ID: "s1", Date: "2025.09.13", Time: "11:30", Couple: "최다솔 안연주"},
		{ID: "s2", Date: "2025.09.14", Time: "14:00", Couple: "김철수 이영희"},
	}

	report := run(t, []fstree.Dir{root}, schedules)
	want := Summary{Analyzed: 3, Matched: 1, Unmatched: 2, Mismatched: 1}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
}
