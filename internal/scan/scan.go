// Package scan walks a shoot folder subtree, counts deliverable images
// and detects RAW/JPEG completeness mismatches.
package scan

import (
	"context"
	"log/slog"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/fstree"
)

// Result holds the counts for one shoot folder subtree.
//
// When any RAW file exists, TotalCount equals RawCount: the delivery
// convention is one JPEG per RAW, so the RAW base-name set is
// authoritative. Without RAW files, TotalCount is the number of
// distinct image base names, so a .jpg and a .png sharing a base count
// once.
type Result struct {
	TotalCount    int      `json:"total_count"`
	RawCount      int      `json:"raw_count"`
	JPEGCount     int      `json:"jpeg_count"`
	HasMismatch   bool     `json:"has_mismatch"`
	MismatchFiles []string `json:"mismatch_files,omitempty"`
}

// Scanner recursively counts classified files under a directory,
// skipping excluded selection folders.
type Scanner struct {
	tables classify.Tables
	logger *slog.Logger
}

func NewScanner(tables classify.Tables, logger *slog.Logger) *Scanner {
	return &Scanner{tables: tables, logger: logger}
}

type treeState struct {
	// base name -> first original filename seen with that base
	rawByBase  map[string]string
	jpegByBase map[string]string
	allBases   map[string]bool
}

// Scan walks the subtree rooted at dir. A listing failure inside the
// tree contributes zero counts for that subtree only; the returned
// error is non-nil solely on context cancellation.
func (s *Scanner) Scan(ctx context.Context, dir fstree.Dir) (Result, error) {
	st := &treeState{
		rawByBase:  make(map[string]string),
		jpegByBase: make(map[string]string),
		allBases:   make(map[string]bool),
	}
	if err := s.walk(ctx, dir, st); err != nil {
		return Result{}, err
	}

	res := Result{
		RawCount:  len(st.rawByBase),
		JPEGCount: len(st.jpegByBase),
	}
	if res.RawCount > 0 {
		res.TotalCount = res.RawCount
		res.HasMismatch, res.MismatchFiles = DetectMismatch(st.rawByBase, st.jpegByBase)
	} else {
		res.TotalCount = len(st.allBases)
	}
	return res, nil
}

func (s *Scanner) walk(ctx context.Context, dir fstree.Dir, st *treeState) error {
	entries, err := fstree.ReadAll(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if s.logger != nil {
			s.logger.Warn("folder listing failed, counting subtree as empty",
				"folder", dir.Name(), "error", err)
		}
		return nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			s.addFile(e.Name(), st)
			continue
		}
		if s.tables.ExcludedFolder(e.Name()) {
			continue
		}
		sub, ok := e.(fstree.Dir)
		if !ok {
			continue
		}
		if err := s.walk(ctx, sub, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) addFile(name string, st *treeState) {
	base := s.tables.BaseName(name)
	switch s.tables.Classify(name) {
	case classify.KindRaw:
		st.allBases[base] = true
		if _, ok := st.rawByBase[base]; !ok {
			st.rawByBase[base] = name
		}
	case classify.KindJPEG:
		st.allBases[base] = true
		if _, ok := st.jpegByBase[base]; !ok {
			st.jpegByBase[base] = name
		}
	case classify.KindImage:
		st.allBases[base] = true
	}
}
