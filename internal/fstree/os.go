package fstree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// osBatchSize bounds a single ReadDir call so the OS adapter goes
// through the same multi-batch path as the capped platform primitives.
const osBatchSize = 128

// OSEntry adapts a path on the local filesystem to the tree interfaces.
type OSEntry struct {
	path string
	dir  bool
}

// OpenDir stats path and returns it as a directory handle.
func OpenDir(path string) (*OSEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	return &OSEntry{path: abs, dir: true}, nil
}

func (e *OSEntry) Name() string { return filepath.Base(e.path) }

func (e *OSEntry) IsDir() bool { return e.dir }

// Path returns the absolute path backing this entry.
func (e *OSEntry) Path() string { return e.path }

func (e *OSEntry) Reader() Reader { return &osReader{path: e.path} }

type osReader struct {
	path string
	f    *os.File
	done bool
}

func (r *osReader) Next(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		r.close()
		return nil, err
	}
	if r.done {
		return nil, nil
	}
	if r.f == nil {
		f, err := os.Open(r.path)
		if err != nil {
			r.done = true
			return nil, err
		}
		r.f = f
	}

	batch, err := r.f.ReadDir(osBatchSize)
	if errors.Is(err, io.EOF) {
		r.close()
		err = nil
	} else if err != nil {
		r.close()
		return nil, err
	}
	if len(batch) == 0 {
		r.close()
		return nil, err
	}

	entries := make([]Entry, 0, len(batch))
	for _, de := range batch {
		entries = append(entries, &OSEntry{
			path: filepath.Join(r.path, de.Name()),
			dir:  de.IsDir(),
		})
	}
	return entries, nil
}

func (r *osReader) close() {
	r.done = true
	if r.f != nil {
		r.f.Close()
		r.f = nil
	}
}
