// Package fstree abstracts a hierarchical directory handle whose
// children are listed in bounded batches, mirroring platform listing
// primitives that cap a single call. ReadAll is the only sanctioned way
// to enumerate a directory: it keeps draining batches until the
// underlying reader reports exhaustion, so callers never see a
// truncated listing.
package fstree

import "context"

// Entry is a node in the tree: a file or a directory. Directory
// entries returned by a Reader always implement Dir.
type Entry interface {
	Name() string
	IsDir() bool
}

// Dir is a directory entry. Each call to Reader returns a fresh
// listing positioned at the first batch.
type Dir interface {
	Entry
	Reader() Reader
}

// Reader returns successive batches of child entries. An empty batch
// with a nil error signals that the listing is exhausted; a partial
// batch carries no such meaning and must be followed by another Next
// call.
type Reader interface {
	Next(ctx context.Context) ([]Entry, error)
}

// ReadAll drains the directory's reader and returns the complete child
// list. Order within the result follows batch order and is otherwise
// unspecified.
func ReadAll(ctx context.Context, dir Dir) ([]Entry, error) {
	r := dir.Reader()
	var entries []Entry
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := r.Next(ctx)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			return entries, nil
		}
		entries = append(entries, batch...)
	}
}
