package project

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Body is work run inside a project context.
type Body func(ctx context.Context, id domain.ProjectID) error

type lockKey struct{}

// lockLevel is carried by the context passed to a body. Calls made with that context
// take slot instead of the process-wide lock.
type lockLevel struct {
	owner *Service
	slot  chan struct{}
}

// RunInProject loads the project for appKey, runs body inside its context and pops the
// context again, whether body returns, fails or panics. When dir is not empty the working
// directory is changed to it for the duration of the call.
//
// Calls are serialized process-wide. A call made with the context passed to an enclosing
// body runs inside that body's hold on the lock, serialized with the other calls made from
// the same body.
func (s *Service) RunInProject(
	ctx context.Context,
	appKey, dir string,
	override domain.ConfigMap,
	body Body,
) (err error) {
	ctx, span := s.tracer.Start(ctx, "project.run",
		ports.WithAttribute("app_key", appKey),
		ports.WithAttribute("dir", dir),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	ctx, release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if dir != "" {
		restore, err := s.enter(dir)
		if err != nil {
			return err
		}
		defer restore()
	}

	id, err := s.Load(ctx, appKey, override)
	if err != nil {
		return err
	}
	defer s.stack.Pop()

	span.SetAttribute("project", id)
	span.SetAttribute("depth", s.stack.Depth())

	return body(ctx, id)
}

// acquire takes the slot guarding ctx's nesting level: the process-wide lock at the top
// level, or the slot of the enclosing body when ctx comes from one. The returned context
// marks a new level for the caller's own body.
func (s *Service) acquire(ctx context.Context) (context.Context, func(), error) {
	slot := s.lock
	if level, ok := ctx.Value(lockKey{}).(*lockLevel); ok && level.owner == s {
		slot = level.slot
	}

	select {
	case slot <- struct{}{}:
		next := &lockLevel{owner: s, slot: make(chan struct{}, 1)}
		return context.WithValue(ctx, lockKey{}, next), func() { <-slot }, nil
	case <-ctx.Done():
		return ctx, nil, zerr.Wrap(ctx.Err(), "failed to acquire project lock")
	}
}

// enter changes the working directory to dir and returns a func restoring the previous one.
func (s *Service) enter(dir string) (func(), error) {
	previous, err := s.fs.Getwd()
	if err != nil {
		return nil, domain.WithCause(domain.ErrWorkingDirFailed, err)
	}

	if err := s.fs.Chdir(dir); err != nil {
		return nil, zerr.With(domain.WithCause(domain.ErrWorkingDirFailed, err), "dir", dir)
	}

	return func() {
		if err := s.fs.Chdir(previous); err != nil {
			s.logger.Warn("failed to restore working directory " + previous + ": " + err.Error())
		}
	}, nil
}

// Each runs body inside every sub-application of the current umbrella project, in name order.
// Sub-applications are the directories under apps_path holding a definition file; they inherit
// the umbrella's build path, deps path and lockfile. Each stops at the first failing child.
func (s *Service) Each(ctx context.Context, body Body) error {
	cfg := s.CurrentConfig()

	children, err := s.Apps(ctx)
	if err != nil {
		return err
	}

	override, err := s.paths.DependencyPropagation(cfg)
	if err != nil {
		return err
	}

	for _, dir := range children {
		name := filepath.Base(dir)
		if err := s.RunInProject(ctx, name, dir, override, body); err != nil {
			return zerr.With(zerr.Wrap(err, "sub-application failed"), "app", name)
		}
	}

	return nil
}

// Apps lists the sub-application directories of the current umbrella project, sorted by name.
// It fails with domain.ErrNotUmbrella outside an umbrella project.
func (s *Service) Apps(ctx context.Context) ([]string, error) {
	appsPath, err := s.paths.AppsPath(s.CurrentConfig())
	if err != nil {
		return nil, err
	}

	entries, err := s.fs.ReadDir(appsPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list sub-applications"), "apps_path", appsPath)
	}

	found := make([]bool, len(entries))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			ok, err := s.hasDefinition(filepath.Join(appsPath, entry.Name()))
			if err != nil {
				return err
			}
			found[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var apps []string
	for i, entry := range entries {
		if found[i] {
			apps = append(apps, filepath.Join(appsPath, entry.Name()))
		}
	}
	slices.Sort(apps)

	return apps, nil
}

func (s *Service) hasDefinition(dir string) (bool, error) {
	path := filepath.Join(dir, domain.DefinitionFileName)
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to inspect sub-application"), "path", path)
	}
	return !info.IsDir(), nil
}
