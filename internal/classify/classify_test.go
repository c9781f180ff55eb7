package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	tables := Default()

	tests := []struct {
		filename string
		want     Kind
	}{
		{"DSC_0001.ARW", KindRaw},
		{"IMG_0012.cr2", KindRaw},
		{"DSC_0001.jpg", KindJPEG},
		{"DSC_0001.JPEG", KindJPEG},
		{"cover.png", KindImage},
		{"scan.TIFF", KindImage},
		{"notes.txt", KindIgnored},
		{"video.mp4", KindIgnored},
		{"noextension", KindIgnored},
	}
	for _, tt := range tests {
		if got := tables.Classify(tt.filename); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	tables := Default()

	tests := []struct {
		filename string
		want     string
	}{
		{"DSC_0001.ARW", "dsc_0001"},
		{"DSC_0001.jpg", "dsc_0001"},
		{"Cover.PNG", "cover"},
		{"archive.2024.cr2", "archive.2024"},
		{"notes.txt", "notes.txt"}, // unknown extension is kept
	}
	for _, tt := range tests {
		if got := tables.BaseName(tt.filename); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestExcludedFolder(t *testing.T) {
	tables := Default()

	for _, name := range []string{"셀렉", "신부님 셀렉본", "Selected", "SELECT", "best-sel"} {
		if !tables.ExcludedFolder(name) {
			t.Errorf("ExcludedFolder(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"본식", "2025.09.13 11시30분", "RAW"} {
		if tables.ExcludedFolder(name) {
			t.Errorf("ExcludedFolder(%q) = true, want false", name)
		}
	}
}

func TestNewTables_Normalization(t *testing.T) {
	tables := NewTables([]string{"CR3", ".Nef"}, []string{"JPG"}, []string{" Picks "})

	if got := tables.Classify("a.cr3"); got != KindRaw {
		t.Errorf("Classify(a.cr3) = %v, want KindRaw", got)
	}
	if got := tables.Classify("a.NEF"); got != KindRaw {
		t.Errorf("Classify(a.NEF) = %v, want KindRaw", got)
	}
	if !tables.ExcludedFolder("x-picks") {
		t.Error("ExcludedFolder(x-picks) = false, want true")
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
raw_extensions = ["cr3", "nef"]
exclude_folders = ["picks"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if got := tables.Classify("a.cr3"); got != KindRaw {
		t.Errorf("Classify(a.cr3) = %v, want KindRaw from override", got)
	}
	if got := tables.Classify("a.arw"); got != KindIgnored {
		t.Errorf("Classify(a.arw) = %v, want KindIgnored: override replaced the RAW list", got)
	}
	// image_extensions omitted: defaults kept.
	if got := tables.Classify("a.png"); got != KindImage {
		t.Errorf("Classify(a.png) = %v, want KindImage from defaults", got)
	}
	if !tables.ExcludedFolder("picks 2024") {
		t.Error("ExcludedFolder(picks 2024) = false, want true from override")
	}
	if tables.ExcludedFolder("셀렉") {
		t.Error("ExcludedFolder(셀렉) = true, want false: override replaced the keyword list")
	}
}

func TestLoadRules_Missing(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadRules() on a missing file should return an error")
	}
}
