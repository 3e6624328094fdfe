// Package stack holds the process-wide context stack and the caches that outlive its frames.
package stack

import (
	"sync"

	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/zerr"
)

// Merger resolves the configuration stored in a frame.
type Merger interface {
	Resolve(declared domain.ConfigMap, env string, override domain.ConfigMap) (domain.ConfigMap, error)
}

// Stack is a synchronized LIFO of active project contexts.
// The top frame is the current context. Frames are never mutated once pushed.
type Stack struct {
	mu     sync.RWMutex
	frames []domain.Frame
	merger Merger
	env    ports.EnvironmentProvider
}

// New creates an empty Stack.
func New(merger Merger, env ports.EnvironmentProvider) *Stack {
	return &Stack{
		merger: merger,
		env:    env,
	}
}

// Push resolves declared under the current build environment, applies override
// and appends the resulting frame.
//
// A project already on the stack may be pushed again from the same location.
// Pushing it from a different location fails with domain.ErrDuplicateProject
// and leaves the stack unchanged. Frames without a project never conflict.
func (s *Stack) Push(id domain.ProjectID, declared domain.ConfigMap, location string, override domain.ConfigMap) (domain.Frame, error) {
	cfg, err := s.merger.Resolve(declared, s.env.Name(), override)
	if err != nil {
		return domain.Frame{}, zerr.With(zerr.Wrap(err, "failed to resolve project configuration"), "project", id.String())
	}

	frame := domain.Frame{ID: id, Config: cfg, Location: location}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !id.IsZero() {
		for _, existing := range s.frames {
			if existing.ID == id && existing.Location != location {
				dupErr := zerr.Wrap(domain.ErrDuplicateProject, "failed to push project context")
				dupErr = zerr.With(dupErr, "project", id.String())
				dupErr = zerr.With(dupErr, "existing_location", existing.Location)
				return domain.Frame{}, zerr.With(dupErr, "new_location", location)
			}
		}
	}

	s.frames = append(s.frames, frame)
	return frame.Clone(), nil
}

// Pop removes and returns the top frame. Popping an empty stack is a no-op
// that returns false.
func (s *Stack) Pop() (domain.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return domain.Frame{}, false
	}

	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = domain.Frame{}
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

// Peek returns a copy of the top frame without removing it.
func (s *Stack) Peek() (domain.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.frames) == 0 {
		return domain.Frame{}, false
	}
	return s.frames[len(s.frames)-1].Clone(), true
}

// Depth returns the number of frames on the stack.
func (s *Stack) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Frames returns copies of all frames, bottom first.
func (s *Stack) Frames() []domain.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Frame, 0, len(s.frames))
	for _, f := range s.frames {
		out = append(out, f.Clone())
	}
	return out
}
