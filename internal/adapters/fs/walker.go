package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/nest/internal/core/domain"
)

// DefaultIgnores are directory names never descended into when walking a project tree.
var DefaultIgnores = []string{domain.BuildDirName, "deps", "node_modules"}

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it, skipping .git, .jj and ignored directories.
// Unreadable directories are skipped.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return err
			}

			if !d.IsDir() {
				return nil
			}

			if path != root && w.shouldSkipDir(d.Name(), ignores) {
				return filepath.SkipDir
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir reports whether a directory with the given name is excluded from the walk.
func (w *Walker) shouldSkipDir(name string, ignores []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
