package watcher

import (
	"errors"
	iofs "io/fs"
	"sync"

	"go.trai.ch/nest/internal/core/ports"
)

// Fingerprints remembers the content hash of definition files so that events which
// leave a file unchanged, such as a save without edits, can be ignored.
type Fingerprints struct {
	mu     sync.Mutex
	hashes map[string]uint64
	hasher ports.Hasher
}

// NewFingerprints creates an empty set of fingerprints.
func NewFingerprints(hasher ports.Hasher) *Fingerprints {
	return &Fingerprints{
		hashes: make(map[string]uint64),
		hasher: hasher,
	}
}

// Record stores the current hash of path.
func (f *Fingerprints) Record(path string) error {
	hash, err := f.hasher.ComputeFileHash(path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes[path] = hash
	return nil
}

// Changed reports whether the content of path differs from the last recorded hash,
// and records the new one. A file that disappeared counts as changed once.
func (f *Fingerprints) Changed(path string) (bool, error) {
	hash, err := f.hasher.ComputeFileHash(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	previous, known := f.hashes[path]
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			delete(f.hashes, path)
			return known, nil
		}
		return false, err
	}

	f.hashes[path] = hash
	return !known || previous != hash, nil
}

// Len returns the number of recorded files.
func (f *Fingerprints) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.hashes)
}
