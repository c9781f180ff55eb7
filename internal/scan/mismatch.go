package scan

import "sort"

// DetectMismatch compares the RAW and JPEG base-name sets of a subtree.
// The maps carry base name -> one original filename with that base.
//
// A mismatch is any difference in set membership, which is strictly
// stronger than comparing cardinalities. The reported files are the
// originals for RAW-only bases first, then JPEG-only bases, each group
// sorted by base name so the output is deterministic.
func DetectMismatch(rawByBase, jpegByBase map[string]string) (bool, []string) {
	var rawOnly, jpegOnly []string
	for base := range rawByBase {
		if _, ok := jpegByBase[base]; !ok {
			rawOnly = append(rawOnly, base)
		}
	}
	for base := range jpegByBase {
		if _, ok := rawByBase[base]; !ok {
			jpegOnly = append(jpegOnly, base)
		}
	}
	if len(rawOnly) == 0 && len(jpegOnly) == 0 {
		return false, nil
	}

	sort.Strings(rawOnly)
	sort.Strings(jpegOnly)

	files := make([]string, 0, len(rawOnly)+len(jpegOnly))
	for _, base := range rawOnly {
		files = append(files, rawByBase[base])
	}
	for _, base := range jpegOnly {
		files = append(files, jpegByBase[base])
	}
	return true, files
}
