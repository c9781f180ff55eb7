package classify

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// rulesFile is the on-disk shape of a classification rules override.
// Any omitted list keeps its default.
type rulesFile struct {
	RawExtensions   []string `toml:"raw_extensions"`
	ImageExtensions []string `toml:"image_extensions"`
	ExcludeFolders  []string `toml:"exclude_folders"`
}

// LoadRules reads a TOML rules file and returns Tables with the shipped
// defaults filling in any list the file leaves unset.
func LoadRules(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read rules file: %w", err)
	}

	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return Tables{}, fmt.Errorf("parse rules file: %w", err)
	}

	raw := DefaultRawExts
	if len(rf.RawExtensions) > 0 {
		raw = rf.RawExtensions
	}
	img := DefaultImageExts
	if len(rf.ImageExtensions) > 0 {
		img = rf.ImageExtensions
	}
	excl := DefaultExcludeKeywords
	if len(rf.ExcludeFolders) > 0 {
		excl = rf.ExcludeFolders
	}
	return NewTables(raw, img, excl), nil
}
