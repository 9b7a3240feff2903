package file

import (
	"sort"

	"github.com/jsphweid/rebeam/model"
)

// CreateFileNumMap numbers paths in sorted order so repeated runs over the
// same tree give every file the same number.
func CreateFileNumMap(paths []string) model.FileNumToMidiPath {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	res := make(model.FileNumToMidiPath, len(sorted))
	for i, v := range sorted {
		res[uint32(i)] = v
	}
	return res
}
