// Package classify maps filenames to delivery file kinds based on
// extension tables, and decides which folders are excluded from
// counting. The tables ship with fixed defaults and can be overridden
// by a TOML rules file.
package classify

import (
	"path"
	"strings"
)

// Kind is the classification of a single filename.
type Kind int

const (
	KindIgnored Kind = iota
	KindRaw
	KindJPEG
	KindImage
)

// DefaultRawExts lists vendor RAW formats. RAW presence in a subtree
// switches counting to the 1:1 RAW↔JPEG delivery convention.
var DefaultRawExts = []string{
	".raw", ".cr2", ".nef", ".arw", ".dng", ".orf",
	".rw2", ".pef", ".srw", ".x3f", ".raf", ".3fr",
	".fff", ".erf", ".mrw", ".dcr", ".kdc", ".srf", ".arq",
}

// DefaultImageExts lists every countable image format, JPEG included.
var DefaultImageExts = []string{
	".jpg", ".jpeg", ".png", ".webp", ".avif",
	".heic", ".heif", ".tiff", ".tif", ".bmp",
	".gif", ".jfif", ".pjpeg", ".pjp",
}

// DefaultExcludeKeywords marks curated "selection" folders whose
// contents would double-count deliverables.
var DefaultExcludeKeywords = []string{"셀렉", "선택", "select", "selected", "sel"}

// Tables holds the classification configuration. The zero value is not
// usable; construct with Default or NewTables.
type Tables struct {
	rawExts         map[string]bool
	imageExts       map[string]bool
	excludeKeywords []string
}

// Default returns Tables using the shipped extension and keyword lists.
func Default() Tables {
	return NewTables(DefaultRawExts, DefaultImageExts, DefaultExcludeKeywords)
}

// NewTables builds Tables from explicit lists. Extensions are
// normalized to a leading dot and lower case, keywords to lower case.
func NewTables(rawExts, imageExts, excludeKeywords []string) Tables {
	t := Tables{
		rawExts:   make(map[string]bool, len(rawExts)),
		imageExts: make(map[string]bool, len(imageExts)),
	}
	for _, e := range rawExts {
		t.rawExts[normalizeExt(e)] = true
	}
	for _, e := range imageExts {
		t.imageExts[normalizeExt(e)] = true
	}
	for _, kw := range excludeKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			t.excludeKeywords = append(t.excludeKeywords, kw)
		}
	}
	return t
}

// Classify maps a filename to its kind, case-insensitive on the
// extension. JPEG is fixed to .jpg/.jpeg regardless of table overrides
// since the RAW↔JPEG pairing convention is tied to those extensions.
func (t Tables) Classify(filename string) Kind {
	ext := strings.ToLower(path.Ext(filename))
	switch {
	case t.rawExts[ext]:
		return KindRaw
	case ext == ".jpg" || ext == ".jpeg":
		return KindJPEG
	case t.imageExts[ext]:
		return KindImage
	}
	return KindIgnored
}

// BaseName strips a known extension and lowercases the rest. The base
// name is the join key pairing a RAW file with its JPEG counterpart.
func (t Tables) BaseName(filename string) string {
	lower := strings.ToLower(filename)
	ext := path.Ext(lower)
	if ext != "" && (t.rawExts[ext] || t.imageExts[ext] || ext == ".jpg" || ext == ".jpeg") {
		return strings.TrimSuffix(lower, ext)
	}
	return lower
}

// ExcludedFolder reports whether a folder name matches a selection
// keyword (case-insensitive substring match).
func (t Tables) ExcludedFolder(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range t.excludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	return e
}
