// Package app implements the application layer for nest.
package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"go.trai.ch/nest/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/project"
	"go.trai.ch/nest/internal/engine/structure"
)

// rootKey is the cache key of the project the command runs in.
const rootKey = "."

// logConfigurer is implemented by loggers whose output can be switched at runtime.
type logConfigurer interface {
	SetJSON(on bool)
	SetVerbose(on bool)
}

// App represents the main application logic.
type App struct {
	project      *project.Service
	structure    *structure.Initializer
	env          *detector.Environment
	logger       ports.Logger
	fs           ports.FileSystem
	walker       ports.DirWalker
	watcher      ports.Watcher
	fingerprints *watcher.Fingerprints

	dir            string
	debounceWindow time.Duration
	shutdown       func(context.Context) error
}

// New creates a new App instance.
func New(
	svc *project.Service,
	initializer *structure.Initializer,
	env *detector.Environment,
	log ports.Logger,
	fileSystem ports.FileSystem,
	walker ports.DirWalker,
	w ports.Watcher,
	fingerprints *watcher.Fingerprints,
) *App {
	return &App{
		project:        svc,
		structure:      initializer,
		env:            env,
		logger:         log,
		fs:             fileSystem,
		walker:         walker,
		watcher:        w,
		fingerprints:   fingerprints,
		debounceWindow: watcher.DefaultDebounceWindow,
	}
}

// WithDebounceWindow sets how long watch mode waits for file events to settle.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.debounceWindow = window
	return a
}

// Configure loads the settings of nest from flags, NEST_* variables and the .env file
// of the target directory, and applies them.
func (a *App) Configure(flags *pflag.FlagSet) error {
	dotenv := domain.EnvFileName
	if flags != nil {
		if dir, _ := flags.GetString("dir"); dir != "" {
			dotenv = filepath.Join(dir, domain.EnvFileName)
		}
	}

	settings, err := config.LoadSettings(flags, dotenv)
	if err != nil {
		return err
	}

	a.env.Set(settings.Env)
	a.dir = settings.Dir

	if lc, ok := a.logger.(logConfigurer); ok {
		format := detector.ResolveLogFormat(detector.DetectLogFormat(), settings.LogFormat)
		lc.SetJSON(format == config.LogFormatJSON)
		lc.SetVerbose(settings.Verbose)
	}

	if settings.Verbose && a.shutdown == nil {
		a.shutdown = telemetry.Setup(a.logger)
	}

	a.logger.Debug("build environment: " + a.env.Name())
	return nil
}

// Close flushes telemetry set up by Configure.
func (a *App) Close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	shutdown := a.shutdown
	a.shutdown = nil
	return shutdown(ctx)
}

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	// Format is "text" or "yaml".
	Format string
}

// Show prints the resolved configuration of the current project.
func (a *App) Show(ctx context.Context, out io.Writer, opts ShowOptions) error {
	return a.project.RunInProject(ctx, rootKey, a.dir, nil, func(_ context.Context, _ domain.ProjectID) error {
		return a.render(out, opts.Format)
	})
}

func (a *App) render(out io.Writer, format string) error {
	frame, ok := a.project.CurrentFrame()
	if !ok {
		frame = domain.Frame{ID: domain.NoProject, Config: domain.DefaultConfig(), Location: domain.NoFile}
	}

	switch format {
	case FormatYAML:
		return renderYAML(out, frame)
	case FormatText, "":
		return renderText(out, frame, a.env.Name())
	default:
		return unknownFormat(format)
	}
}

// Paths prints the directories derived from the current project configuration.
func (a *App) Paths(ctx context.Context, out io.Writer) error {
	return a.project.RunInProject(ctx, rootKey, a.dir, nil, func(_ context.Context, _ domain.ProjectID) error {
		entries := []struct {
			name    string
			resolve func() (string, error)
		}{
			{"build", a.project.BuildPath},
			{"deps", a.project.DepsPath},
			{"app", a.project.AppPath},
			{"compile", a.project.CompilePath},
		}

		rows := make([][2]string, 0, len(entries))
		for _, e := range entries {
			path, err := e.resolve()
			switch {
			case errors.Is(err, domain.ErrMissingAppName):
				path = "-"
			case err != nil:
				return err
			}
			rows = append(rows, [2]string{e.name, path})
		}
		return renderRows(out, rows)
	})
}

// Prepare creates the build directory layout of the current project, or of every
// sub-application when the current project is an umbrella.
func (a *App) Prepare(ctx context.Context) error {
	return a.project.RunInProject(ctx, rootKey, a.dir, nil, func(ctx context.Context, id domain.ProjectID) error {
		if a.project.IsUmbrella() {
			return a.project.Each(ctx, a.prepareOne)
		}
		return a.prepareOne(ctx, id)
	})
}

func (a *App) prepareOne(ctx context.Context, id domain.ProjectID) error {
	if err := a.structure.Ensure(ctx, a.project.CurrentConfig()); err != nil {
		return err
	}

	compilePath, err := a.project.CompilePath()
	if err != nil {
		return err
	}
	a.logger.Info("prepared " + id.String() + " in " + compilePath)
	return nil
}

// Apps prints the sub-applications of the current umbrella project.
func (a *App) Apps(ctx context.Context, out io.Writer) error {
	return a.project.RunInProject(ctx, rootKey, a.dir, nil, func(ctx context.Context, _ domain.ProjectID) error {
		var rows [][2]string
		err := a.project.Each(ctx, func(_ context.Context, id domain.ProjectID) error {
			frame, _ := a.project.CurrentFrame()
			rows = append(rows, [2]string{id.String(), filepath.Dir(frame.Location)})
			return nil
		})
		if err != nil {
			return err
		}
		return renderRows(out, rows)
	})
}
