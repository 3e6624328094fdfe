// Package fs provides file system adapters for project resolution, walking and hashing.
package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*OS)(nil)

// OS implements ports.FileSystem using the os package.
type OS struct{}

// NewOS creates a new OS file system.
func NewOS() *OS {
	return &OS{}
}

// Getwd returns the current working directory.
func (o *OS) Getwd() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return dir, nil
}

// Chdir changes the current working directory.
func (o *OS) Chdir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to change directory"), "path", dir)
	}
	return nil
}

// Abs returns the absolute representation of path.
func (o *OS) Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve absolute path"), "path", path)
	}
	return abs, nil
}

// Stat returns file info for path, following symlinks.
func (o *OS) Stat(path string) (iofs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info, nil
}

// Lstat returns file info for path without following symlinks.
func (o *OS) Lstat(path string) (iofs.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to lstat path"), "path", path)
	}
	return info, nil
}

// ReadDir lists the entries of the directory at path.
func (o *OS) ReadDir(path string) ([]iofs.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", path)
	}
	return entries, nil
}

// MkdirAll creates path and any missing parents.
func (o *OS) MkdirAll(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// Readlink returns the destination of the symbolic link at path.
func (o *OS) Readlink(path string) (string, error) {
	dest, err := os.Readlink(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read symlink"), "path", path)
	}
	return dest, nil
}

// Symlink creates target as a symbolic link to source.
func (o *OS) Symlink(source, target string) error {
	if err := os.Symlink(source, target); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to create symlink"), "source", source), "target", target)
	}
	return nil
}

// RemoveAll removes path and everything below it.
func (o *OS) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", path)
	}
	return nil
}

// CopyDir copies the tree at source into target. Existing files are not
// overwritten; the returned error then matches fs.ErrExist.
func (o *OS) CopyDir(source, target string) error {
	if err := os.CopyFS(target, os.DirFS(source)); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy directory"), "source", source), "target", target)
	}
	return nil
}
