// Package project loads project definitions onto the context stack and runs work inside them.
package project

import (
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/paths"
	"go.trai.ch/nest/internal/engine/stack"
	"go.trai.ch/zerr"
)

// Service owns the context stack, its caches and the collaborators needed to fill them.
// A single Service is shared by every caller in the process.
type Service struct {
	stack       *stack.Stack
	cache       *stack.Cache
	definitions *stack.Definitions
	paths       *paths.Resolver
	evaluator   ports.DefinitionEvaluator
	fs          ports.FileSystem
	logger      ports.Logger
	tracer      ports.Tracer

	// lock serializes directory changes, loads and the work run inside a project.
	lock chan struct{}
}

// NewService creates a new Service.
func NewService(
	st *stack.Stack,
	cache *stack.Cache,
	definitions *stack.Definitions,
	resolver *paths.Resolver,
	evaluator ports.DefinitionEvaluator,
	fs ports.FileSystem,
	logger ports.Logger,
	tracer ports.Tracer,
) *Service {
	return &Service{
		stack:       st,
		cache:       cache,
		definitions: definitions,
		paths:       resolver,
		evaluator:   evaluator,
		fs:          fs,
		logger:      logger,
		tracer:      tracer,
		lock:        make(chan struct{}, 1),
	}
}

// CurrentID returns the identity of the innermost project, or domain.NoProject.
func (s *Service) CurrentID() domain.ProjectID {
	frame, ok := s.stack.Peek()
	if !ok {
		return domain.NoProject
	}
	return frame.ID
}

// CurrentIDOrFail returns the identity of the innermost project.
// It fails with domain.ErrNoProject when no project is active.
func (s *Service) CurrentIDOrFail() (domain.ProjectID, error) {
	id := s.CurrentID()
	if id.IsZero() {
		return domain.NoProject, zerr.Wrap(domain.ErrNoProject, "project context required")
	}
	return id, nil
}

// CurrentConfig returns the configuration of the innermost context, or the
// default configuration when the stack is empty.
func (s *Service) CurrentConfig() domain.ConfigMap {
	frame, ok := s.stack.Peek()
	if !ok {
		return domain.DefaultConfig()
	}
	return frame.Config
}

// CurrentFrame returns the innermost context.
func (s *Service) CurrentFrame() (domain.Frame, bool) {
	return s.stack.Peek()
}

// Frames returns the active contexts from outermost to innermost.
func (s *Service) Frames() []domain.Frame {
	return s.stack.Frames()
}

// IsUmbrella reports whether the current project declares sub-applications.
func (s *Service) IsUmbrella() bool {
	return s.CurrentConfig().Has(domain.KeyAppsPath)
}

// DepsPath returns the dependency directory of the current project.
func (s *Service) DepsPath() (string, error) {
	return s.paths.DepsPath(s.CurrentConfig())
}

// BuildPath returns the build directory of the current project.
func (s *Service) BuildPath() (string, error) {
	return s.paths.BuildPath(s.CurrentConfig())
}

// AppPath returns the application build directory of the current project.
func (s *Service) AppPath() (string, error) {
	return s.paths.AppPath(s.CurrentConfig())
}

// CompilePath returns the compiled artifact directory of the current project.
func (s *Service) CompilePath() (string, error) {
	return s.paths.CompilePath(s.CurrentConfig())
}

// Invalidate forgets everything loaded from the definition file at location,
// so the next load of an affected key evaluates it again.
func (s *Service) Invalidate(location string) []string {
	keys := s.cache.Forget(location)
	ids := s.definitions.Forget(location)
	if len(keys) > 0 || len(ids) > 0 {
		s.logger.Debug("invalidated " + location)
	}
	return keys
}

// ClearCache forgets every cached load and declaration.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.definitions.Clear()
}
