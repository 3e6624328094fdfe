package app

import (
	"context"
	"io"
	"path/filepath"

	"go.trai.ch/nest/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/zerr"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Format is the format the configuration is printed in after each reload.
	Format string
}

// Watch prints the configuration of the current project and prints it again whenever a
// definition file below the project directory changes. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, out io.Writer, opts WatchOptions) error {
	root, err := a.watchRoot()
	if err != nil {
		return err
	}

	digest, err := a.reload(ctx, out, opts.Format, "")
	if err != nil {
		return err
	}

	var dirs []string
	for dir := range a.walker.WalkDirs(root, fs.DefaultIgnores) {
		dirs = append(dirs, dir)
		path := filepath.Join(dir, domain.DefinitionFileName)
		if info, statErr := a.fs.Stat(path); statErr == nil && !info.IsDir() {
			if err := a.fingerprints.Record(path); err != nil {
				a.logger.Warn("cannot fingerprint " + path + ": " + err.Error())
			}
		}
	}

	if err := a.watcher.Start(ctx, dirs); err != nil {
		return err
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop watcher: " + err.Error())
		}
	}()

	changes := make(chan []string)
	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			if filepath.Base(event.Path) == domain.DefinitionFileName {
				debouncer.Add(event.Path)
			}
		}
	}()

	a.logger.Info("watching " + root + " for definition changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			if !a.invalidate(paths) {
				continue
			}

			next, err := a.reload(ctx, out, opts.Format, digest)
			switch {
			case err != nil:
				a.logger.Error(err)
			case next == digest:
				a.logger.Info("configuration unchanged")
			default:
				digest = next
			}
		}
	}
}

func (a *App) watchRoot() (string, error) {
	if a.dir != "" {
		root, err := a.fs.Abs(a.dir)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve project directory"), "dir", a.dir)
		}
		return root, nil
	}

	root, err := a.fs.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to read working directory")
	}
	return root, nil
}

// invalidate drops cached contexts loaded from the changed paths.
// It reports whether any path changed content.
func (a *App) invalidate(paths []string) bool {
	changed := false
	for _, path := range paths {
		ok, err := a.fingerprints.Changed(path)
		if err != nil {
			a.logger.Warn("cannot fingerprint " + path + ": " + err.Error())
			ok = true
		}
		if !ok {
			continue
		}

		changed = true
		a.logger.Info("changed " + path)
		// A file nothing was loaded from can still decide which project a directory belongs to.
		if keys := a.project.Invalidate(path); len(keys) == 0 {
			a.project.ClearCache()
		}
	}
	return changed
}

// reload loads the current configuration and prints it unless its digest equals previous.
// It returns the digest.
func (a *App) reload(ctx context.Context, out io.Writer, format, previous string) (string, error) {
	var digest string
	err := a.project.RunInProject(ctx, rootKey, a.dir, nil, func(_ context.Context, _ domain.ProjectID) error {
		digest = a.project.CurrentID().String() + ":" + a.project.CurrentConfig().Digest()
		if digest == previous {
			return nil
		}
		return a.render(out, format)
	})
	return digest, err
}
