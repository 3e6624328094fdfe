package ports

import (
	"io/fs"
	"iter"
)

// FileSystem abstracts the filesystem operations used while resolving project contexts.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Getwd returns the current working directory.
	Getwd() (string, error)
	// Chdir changes the current working directory.
	Chdir(dir string) error
	// Abs returns an absolute representation of path relative to the working directory.
	Abs(path string) (string, error)
	// Stat returns file info for the given path, following symlinks.
	Stat(path string) (fs.FileInfo, error)
	// Lstat returns file info for the given path without following symlinks.
	Lstat(path string) (fs.FileInfo, error)
	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)
	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error
	// Readlink returns the destination of a symbolic link.
	Readlink(path string) (string, error)
	// Symlink creates target as a symbolic link to source.
	Symlink(source, target string) error
	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error
	// CopyDir copies the directory tree at source to target.
	CopyDir(source, target string) error
}

// Hasher computes content digests used to tell whether a definition file really changed.
type Hasher interface {
	// ComputeFileHash returns the XXHash of the file content at path.
	ComputeFileHash(path string) (uint64, error)
}

// DirWalker enumerates the directories of a project tree.
type DirWalker interface {
	// WalkDirs yields root and every directory below it whose name does not match ignores.
	WalkDirs(root string, ignores []string) iter.Seq[string]
}
