// Package quality runs clang-format and clang-tidy over project sources.
package quality

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TranslationUnitExts are the extensions clang-tidy is run on
var TranslationUnitExts = []string{".c", ".cc", ".cpp", ".cxx"}

// Excluder decides which directories are skipped while collecting sources.
// Plain names match a directory at any depth; entries containing glob
// metacharacters are matched against the slash-separated relative path.
type Excluder struct {
	names    []string
	patterns []string
}

// NewExcluder splits exclude entries into names and patterns
func NewExcluder(excludes []string) *Excluder {
	e := &Excluder{}
	for _, ex := range excludes {
		ex = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(ex)), "/")
		if ex == "" {
			continue
		}
		if strings.ContainsAny(ex, "*?[{") || strings.Contains(ex, "/") {
			if doublestar.ValidatePattern(ex) {
				e.patterns = append(e.patterns, ex)
			}
			continue
		}
		e.names = append(e.names, ex)
	}
	return e
}

// Excluded reports whether the directory at rel (relative to the root) is skipped
func (e *Excluder) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	if slices.Contains(e.names, filepath.Base(rel)) {
		return true
	}
	for _, p := range e.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// CollectSources walks root and returns the files with one of exts outside
// excluded directories, as root-relative paths in lexical order.
func CollectSources(root string, exts, excludes []string) ([]string, error) {
	ex := NewExcluder(excludes)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && ex.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// TranslationUnits keeps the files clang-tidy can analyse on their own
func TranslationUnits(files []string) []string {
	var units []string
	for _, f := range files {
		if slices.Contains(TranslationUnitExts, filepath.Ext(f)) {
			units = append(units, f)
		}
	}
	return units
}
