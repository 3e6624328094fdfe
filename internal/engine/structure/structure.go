// Package structure creates the build directory layout of a project.
package structure

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/paths"
	"go.trai.ch/zerr"
)

// Initializer prepares the build directory of a resolved configuration.
type Initializer struct {
	fs     ports.FileSystem
	paths  *paths.Resolver
	logger ports.Logger
	tracer ports.Tracer
}

// NewInitializer creates a new Initializer.
func NewInitializer(fs ports.FileSystem, resolver *paths.Resolver, logger ports.Logger, tracer ports.Tracer) *Initializer {
	return &Initializer{fs: fs, paths: resolver, logger: logger, tracer: tracer}
}

// Ensure creates the compile path of cfg and links the priv directory of the working
// directory into the application build directory. It is safe to call repeatedly.
func (i *Initializer) Ensure(ctx context.Context, cfg domain.ConfigMap) (err error) {
	_, span := i.tracer.Start(ctx, "structure.ensure")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	appPath, err := i.paths.AppPath(cfg)
	if err != nil {
		return err
	}
	compilePath, err := i.paths.CompilePath(cfg)
	if err != nil {
		return err
	}
	span.SetAttribute("compile_path", compilePath)

	if err := i.fs.MkdirAll(compilePath); err != nil {
		return zerr.With(domain.WithCause(domain.ErrBuildStructureFailed, err), "path", compilePath)
	}

	wd, err := i.fs.Getwd()
	if err != nil {
		return domain.WithCause(domain.ErrBuildStructureFailed, err)
	}

	return i.linkPriv(filepath.Join(wd, domain.PrivDirName), filepath.Join(appPath, domain.PrivDirName))
}

// linkPriv makes target a symlink to source, copying source when linking fails.
func (i *Initializer) linkPriv(source, target string) error {
	if _, err := i.fs.Stat(source); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(domain.WithCause(domain.ErrBuildStructureFailed, err), "path", source)
	}

	if info, err := i.fs.Lstat(target); err == nil {
		if info.Mode()&iofs.ModeSymlink != 0 {
			if dest, err := i.fs.Readlink(target); err == nil && dest == source {
				return nil
			}
		}
		if err := i.fs.RemoveAll(target); err != nil {
			return zerr.With(domain.WithCause(domain.ErrBuildStructureFailed, err), "path", target)
		}
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(domain.WithCause(domain.ErrBuildStructureFailed, err), "path", target)
	}

	linkErr := i.fs.Symlink(source, target)
	if linkErr == nil {
		return nil
	}

	if err := i.fs.CopyDir(source, target); err != nil && !errors.Is(err, iofs.ErrExist) {
		i.logger.Warn("failed to link or copy " + source + " to " + target + ": " + err.Error())
		return nil
	}
	i.logger.Debug("copied " + source + " to " + target + ", linking failed: " + linkErr.Error())

	return nil
}
