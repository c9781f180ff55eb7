// Package discover locates shoot folders inside an arbitrary dropped
// directory tree. A directory whose name parses as shoot metadata is a
// shoot folder; anything else is an organizational parent that gets
// recursed into. The same logical shoot appearing at several tree
// levels is reported once.
package discover

import (
	"context"
	"log/slog"

	"github.com/shootsync/shootsync-agent/internal/classify"
	"github.com/shootsync/shootsync-agent/internal/foldername"
	"github.com/shootsync/shootsync-agent/internal/fstree"
)

// Found is one discovered shoot folder. Path is the display path from
// the dropped root down to the folder, joined with "/".
type Found struct {
	Dir  fstree.Dir
	Path string
	Meta *foldername.Meta
}

type Finder struct {
	tables classify.Tables
	logger *slog.Logger
}

func NewFinder(tables classify.Tables, logger *slog.Logger) *Finder {
	return &Finder{tables: tables, logger: logger}
}

// Discover walks the dropped roots. A root whose own name parses is
// recorded directly; otherwise its subtree is searched, stopping
// descent at each shoot folder. Selection folders are never descended
// into and never reported, even when their name would parse. The
// processed-key set is fresh per call, so repeated invocations are
// independent.
func (f *Finder) Discover(ctx context.Context, roots []fstree.Dir) ([]Found, error) {
	seen := make(map[string]bool)
	var found []Found

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.tables.ExcludedFolder(root.Name()) {
			continue
		}
		if meta := foldername.Parse(root.Name()); meta != nil {
			if key := dedupeKey(meta); !seen[key] {
				seen[key] = true
				found = append(found, Found{Dir: root, Path: root.Name(), Meta: meta})
			}
			continue
		}
		sub, err := f.search(ctx, root, root.Name(), seen)
		if err != nil {
			return nil, err
		}
		found = append(found, sub...)
	}
	return found, nil
}

func (f *Finder) search(ctx context.Context, dir fstree.Dir, path string, seen map[string]bool) ([]Found, error) {
	entries, err := fstree.ReadAll(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if f.logger != nil {
			f.logger.Warn("folder listing failed during discovery", "folder", path, "error", err)
		}
		return nil, nil
	}

	var found []Found
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, ok := e.(fstree.Dir)
		if !ok {
			continue
		}
		if f.tables.ExcludedFolder(e.Name()) {
			continue
		}

		childPath := path + "/" + e.Name()
		if meta := foldername.Parse(e.Name()); meta != nil {
			key := dedupeKey(meta)
			if seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, Found{Dir: sub, Path: childPath, Meta: meta})
			continue
		}

		deeper, err := f.search(ctx, sub, childPath, seen)
		if err != nil {
			return nil, err
		}
		found = append(found, deeper...)
	}
	return found, nil
}

// dedupeKey is the composite identity of a logical shoot.
func dedupeKey(m *foldername.Meta) string {
	couple := m.Couple
	if couple == "" {
		couple = "unknown"
	}
	return m.Date + "|" + m.Time + "|" + couple
}
