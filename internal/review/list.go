package review

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// ListInputs returns the regular, non-hidden files in dir accepted by
// filter, sorted by name. A nil filter accepts every file. Subdirectories are
// not descended into.
func ListInputs(dir string, filter func(path string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, reviewerr.IO("list", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if filter != nil && !filter(path) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
