// Package walker enumerates the regular files of a catalog tree.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mvaneijk/tidycat/pkg/models"
)

// DiagFunc receives a diagnostic for every entry the walker had to skip.
type DiagFunc func(path string, err error)

// Walker produces FileRecords for every regular file strictly inside a
// catalog. Symbolic links are never followed and never reported; the walk
// is read-only.
type Walker struct {
	diag DiagFunc
}

// New creates a walker. diag may be nil when skip diagnostics are not
// wanted.
func New(diag DiagFunc) *Walker {
	if diag == nil {
		diag = func(string, error) {}
	}
	return &Walker{diag: diag}
}

// Walk returns a record for every regular file under root, sorted by path.
// A root that does not exist or is not a directory yields an empty result
// and no error, so a mixed catalog list can be processed in one batch.
// Unreadable directories are reported through the diagnostic callback and
// skipped; they never abort the walk.
func (w *Walker) Walk(root string) ([]models.FileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	var records []models.FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.diag(path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// Regular files only: directories, symlinks, and device nodes
		// are not catalog content.
		if d.Type() != 0 {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			w.diag(path, err)
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			w.diag(path, err)
			return nil
		}

		records = append(records, models.FileRecord{
			Path:         path,
			RelativePath: rel,
			Size:         fi.Size(),
			ModTime:      fi.ModTime(),
			Catalog:      absRoot,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog %s: %w", absRoot, err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	return records, nil
}

// WalkAll enumerates every catalog in order and returns the combined file
// list. Duplicate detection is tree-agnostic, so the caller gets one flat
// sequence across all catalogs.
func (w *Walker) WalkAll(roots []string) ([]models.FileRecord, error) {
	var all []models.FileRecord
	for _, root := range roots {
		records, err := w.Walk(root)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
