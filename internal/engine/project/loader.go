package project

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
)

// Load pushes the context of the project in the working directory and returns its identity.
// A key already loaded in this process is pushed again from the cache without evaluating
// its definition file. A directory without a definition file, or whose file declares nothing
// new, yields a context without a project.
func (s *Service) Load(ctx context.Context, appKey string, override domain.ConfigMap) (id domain.ProjectID, err error) {
	ctx, span := s.tracer.Start(ctx, "project.load", ports.WithAttribute("app_key", appKey))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if entry, ok := s.cache.Read(appKey); ok {
		span.SetAttribute("cache_hit", true)
		span.SetAttribute("project", entry.ID)

		var declared domain.ConfigMap
		if decl, found := s.definitions.Lookup(entry.ID); found {
			declared = decl.Config
		}
		if _, err := s.stack.Push(entry.ID, declared, entry.Location, override); err != nil {
			return domain.NoProject, err
		}
		return entry.ID, nil
	}
	span.SetAttribute("cache_hit", false)

	decl, err := s.evaluate(ctx)
	if err != nil {
		return domain.NoProject, err
	}
	span.SetAttribute("project", decl.ID)

	if _, err := s.stack.Push(decl.ID, decl.Config, decl.Location, override); err != nil {
		return domain.NoProject, err
	}
	if !decl.ID.IsZero() {
		s.definitions.Store(decl)
	}
	s.cache.Write(appKey, domain.CacheEntry{ID: decl.ID, Location: decl.Location})

	return decl.ID, nil
}

// evaluate runs the definition file of the working directory and returns what it declared.
// The zero declaration located at domain.NoFile stands for "no project here".
func (s *Service) evaluate(ctx context.Context) (domain.Declaration, error) {
	none := domain.Declaration{ID: domain.NoProject, Location: domain.NoFile}

	wd, err := s.fs.Getwd()
	if err != nil {
		return none, domain.WithCause(domain.ErrWorkingDirFailed, err)
	}
	path := filepath.Join(wd, domain.DefinitionFileName)

	if _, err := s.fs.Stat(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return none, nil
		}
		return none, zerr.With(zerr.Wrap(err, "failed to inspect project definition"), "path", path)
	}

	before := s.CurrentID()
	slot := &declarationSlot{}
	if err := s.evaluator.Evaluate(ctx, path, slot); err != nil {
		return none, err
	}

	if !slot.declared || slot.id == before {
		return none, nil
	}

	return domain.Declaration{ID: slot.id, Config: slot.config, Location: path}, nil
}

// declarationSlot records the single project a definition file may declare.
type declarationSlot struct {
	declared bool
	id       domain.ProjectID
	config   domain.ConfigMap
}

func (r *declarationSlot) Declare(id domain.ProjectID, config domain.ConfigMap) error {
	if id.IsZero() {
		return zerr.Wrap(domain.ErrInvalidDeclaration, "project name must not be empty")
	}
	if r.declared {
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrAlreadyDeclared, "cannot declare a second project"), "project", id),
			"declared", r.id,
		)
	}
	r.declared = true
	r.id = id
	r.config = config.Clone()
	return nil
}
