// Package discover locates SKILL.md files under a directory tree.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// SkillFile is the document name that marks a skill directory.
const SkillFile = "SKILL.md"

// Skills walks root and returns every SKILL.md path, sorted by walk order.
// Exclude patterns use doublestar globs matched against slash-normalized
// paths relative to root. Version-control and dependency directories are
// always skipped.
func Skills(root string, excludes []string) ([]string, error) {
	// A file path is accepted as-is so `skillhawk validate path/to/SKILL.md`
	// works without directory discovery.
	if info, err := os.Stat(root); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return []string{root}, nil
	}

	paths := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		norm := filepath.ToSlash(rel)

		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "node_modules" || name == "vendor" {
				return filepath.SkipDir
			}
			if path != root && excluded(norm, excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != SkillFile {
			return nil
		}
		if excluded(norm, excludes) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		m, err := doublestar.PathMatch(pattern, path)
		if err == nil && m {
			return true
		}
	}
	return false
}
