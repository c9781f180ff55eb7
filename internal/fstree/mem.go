package fstree

import "context"

// MemFile is an in-memory file entry. Together with MemDir it is the
// fixture implementation of the handle interfaces used throughout the
// engine tests.
type MemFile struct {
	name string
}

func NewMemFile(name string) *MemFile { return &MemFile{name: name} }

func (f *MemFile) Name() string { return f.name }

func (f *MemFile) IsDir() bool { return false }

// MemDir is an in-memory directory entry. BatchSize controls how many
// children a single Next call yields (0 means all at once), which lets
// tests exercise the multi-batch enumeration contract.
type MemDir struct {
	name      string
	children  []Entry
	BatchSize int
	readErr   error
}

func NewMemDir(name string, children ...Entry) *MemDir {
	return &MemDir{name: name, children: children}
}

func (d *MemDir) Name() string { return d.name }

func (d *MemDir) IsDir() bool { return true }

// Add appends child entries.
func (d *MemDir) Add(children ...Entry) {
	d.children = append(d.children, children...)
}

// FailReads makes every listing of this directory return err,
// simulating an unreadable subtree.
func (d *MemDir) FailReads(err error) {
	d.readErr = err
}

func (d *MemDir) Reader() Reader { return &memReader{dir: d} }

type memReader struct {
	dir *MemDir
	off int
}

func (r *memReader) Next(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.dir.readErr != nil {
		return nil, r.dir.readErr
	}
	if r.off >= len(r.dir.children) {
		return nil, nil
	}
	end := len(r.dir.children)
	if r.dir.BatchSize > 0 && r.off+r.dir.BatchSize < end {
		end = r.off + r.dir.BatchSize
	}
	batch := r.dir.children[r.off:end]
	r.off = end
	return batch, nil
}
