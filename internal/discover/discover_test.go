package discover

import (
	"context"
	"errors"
	"testing"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/fstree"
)

func newFinder() *Finder {
	return NewFinder(classify.Default(), nil)
}

func TestDiscover_NestedOrganizationalFolders(t *testing.T) {
	root := fstree.NewMemDir("2025",
		fstree.NewMemDir("September",
			fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
				fstree.NewMemFile("DSC_0001.jpg"),
			),
			fstree.NewMemDir("2025.09.14 14시 (김철수 이영희)"),
		),
		fstree.NewMemDir("notes"),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Discover() found %d folders, want 2: %+v", len(found), found)
	}
	if found[0].Path != "2025/September/2025.09.13 11시30분 (최다솔 안연주)" {
		t.Errorf("Path = %q, want nested display path", found[0].Path)
	}
	if found[0].Meta.Date != "2025.09.13" || found[0].Meta.Time != "11:30" {
		t.Errorf("Meta = %+v, want 2025.09.13 11:30", found[0].Meta)
	}
}

func TestDiscover_RootIsShootFolder(t *testing.T) {
	root := fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
		fstree.NewMemFile("DSC_0001.jpg"),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Discover() found %d folders, want the dropped root itself", len(found))
	}
	if found[0].Path != root.Name() {
		t.Errorf("Path = %q, want %q", found[0].Path, root.Name())
	}
}

func TestDiscover_StopsDescentAtShootFolder(t *testing.T) {
	// A shoot folder containing another parseable folder name: descent
	// stops at the outer one.
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)",
			fstree.NewMemDir("2025.09.14 14시 (김철수 이영희)"),
		),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Discover() found %d folders, want 1 (no descent into shoot folders)", len(found))
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	// Same logical shoot at two different tree levels.
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"),
		fstree.NewMemDir("backup",
			fstree.NewMemDir("2025.09.13 11:30 (최다솔 안연주)"),
		),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Discover() found %d folders, want 1 after deduplication", len(found))
	}
}

func TestDiscover_DeduplicatesAcrossRoots(t *testing.T) {
	a := fstree.NewMemDir("a", fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"))
	b := fstree.NewMemDir("b", fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"))

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{a, b})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Discover() found %d folders, want 1: processed keys are shared across roots in one batch", len(found))
	}
}

func TestDiscover_SelectionFolderNeverReported(t *testing.T) {
	// The selection folder's name would parse, but it is excluded first.
	root := fstree.NewMemDir("drop",
		fstree.NewMemDir("셀렉 2025.09.13 11시30분 (최다솔 안연주)"),
		fstree.NewMemDir("select",
			fstree.NewMemDir("2025.09.14 14시 (김철수 이영희)"),
		),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Discover() found %d folders, want 0: selection folders are invisible", len(found))
	}
}

func TestDiscover_ExcludedRootSkipped(t *testing.T) {
	root := fstree.NewMemDir("셀렉",
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Discover() found %d folders, want 0", len(found))
	}
}

func TestDiscover_UnreadableSubtreeSkipped(t *testing.T) {
	broken := fstree.NewMemDir("season")
	broken.FailReads(errors.New("permission denied"))

	root := fstree.NewMemDir("drop",
		broken,
		fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"),
	)

	found, err := newFinder().Discover(context.Background(), []fstree.Dir{root})
	if err != nil {
		t.Fatalf("Discover() error = %v, traversal failures must not abort discovery", err)
	}
	if len(found) != 1 {
		t.Fatalf("Discover() found %d folders, want 1", len(found))
	}
}

func TestDiscover_FreshStatePerInvocation(t *testing.T) {
	root := fstree.NewMemDir("drop", fstree.NewMemDir("2025.09.13 11시30분 (최다솔 안연주)"))
	f := newFinder()

	for i := 0; i < 2; i++ {
		found, err := f.Discover(context.Background(), []fstree.Dir{root})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if len(found) != 1 {
			t.Fatalf("invocation %d found %d folders, want 1 (no cross-invocation state)", i, len(found))
		}
	}
}
