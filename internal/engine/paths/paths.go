// Package paths derives the canonical build, deps and application paths of a resolved configuration.
package paths

import (
	"path/filepath"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver derives absolute paths from a resolved configuration.
// Relative values are expanded against the working directory.
type Resolver struct {
	fs ports.FileSystem
}

// NewResolver creates a new Resolver.
func NewResolver(fs ports.FileSystem) *Resolver {
	return &Resolver{fs: fs}
}

// DepsPath returns the absolute dependency directory, "deps" by default.
func (r *Resolver) DepsPath(cfg domain.ConfigMap) (string, error) {
	return r.abs(cfg, domain.KeyDepsPath, "deps")
}

// BuildPath returns the configured build path, or the absolute path of "_build".
func (r *Resolver) BuildPath(cfg domain.ConfigMap) (string, error) {
	return r.abs(cfg, domain.KeyBuildPath, domain.BuildDirName)
}

// LibPath returns the directory holding one build directory per application.
func (r *Resolver) LibPath(cfg domain.ConfigMap) (string, error) {
	build, err := r.BuildPath(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(build, domain.LibDirName), nil
}

// AppPath returns the configured application path, or BuildPath/lib/<app>.
// It fails with domain.ErrMissingAppName when neither is available.
func (r *Resolver) AppPath(cfg domain.ConfigMap) (string, error) {
	if path, ok := cfg.String(domain.KeyAppPath); ok && path != "" {
		return r.expand(path)
	}

	app, ok := cfg.String(domain.KeyApp)
	if !ok || app == "" {
		return "", zerr.Wrap(domain.ErrMissingAppName, "cannot derive application path")
	}

	lib, err := r.LibPath(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(lib, app), nil
}

// CompilePath returns the directory compiled artifacts of the application live in.
func (r *Resolver) CompilePath(cfg domain.ConfigMap) (string, error) {
	app, err := r.AppPath(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(app, domain.CompileDirName), nil
}

// LockfilePath returns the absolute lockfile path.
func (r *Resolver) LockfilePath(cfg domain.ConfigMap) (string, error) {
	return r.abs(cfg, domain.KeyLockfile, "nest.lock")
}

// AppsPath returns the absolute directory holding the applications of an umbrella project.
// It fails with domain.ErrNotUmbrella when the configuration declares none.
func (r *Resolver) AppsPath(cfg domain.ConfigMap) (string, error) {
	path, ok := cfg.String(domain.KeyAppsPath)
	if !ok || path == "" {
		return "", domain.ErrNotUmbrella
	}
	return r.expand(path)
}

// DependencyPropagation returns the options pushed down unchanged to dependency
// sub-builds so the whole tree shares one build root, deps root and lockfile.
func (r *Resolver) DependencyPropagation(cfg domain.ConfigMap) (domain.ConfigMap, error) {
	build, err := r.BuildPath(cfg)
	if err != nil {
		return nil, err
	}
	deps, err := r.DepsPath(cfg)
	if err != nil {
		return nil, err
	}
	lockfile, err := r.LockfilePath(cfg)
	if err != nil {
		return nil, err
	}

	return domain.ConfigMap{
		domain.KeyBuildPath: build,
		domain.KeyDepsPath:  deps,
		domain.KeyLockfile:  lockfile,
	}, nil
}

func (r *Resolver) abs(cfg domain.ConfigMap, key, fallback string) (string, error) {
	path, ok := cfg.String(key)
	if !ok || path == "" {
		path = fallback
	}
	return r.expand(path)
}

func (r *Resolver) expand(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := r.fs.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to expand path"), "path", path)
	}
	return abs, nil
}
