// Package domain contains the core domain models for project contexts and their configuration.
package domain

// ProjectID identifies a declared project. The zero value means no project.
type ProjectID string

// NoProject is the identity of a context created outside any project directory.
const NoProject ProjectID = ""

// String returns the identity as a string.
func (id ProjectID) String() string {
	return string(id)
}

// IsZero reports whether the identity represents the absence of a project.
func (id ProjectID) IsZero() bool {
	return id == NoProject
}

// Frame is one level of project nesting on the context stack.
// A frame is never mutated after it is pushed.
type Frame struct {
	ID       ProjectID
	Config   ConfigMap
	Location string
}

// Clone returns a copy of the frame that shares no mutable state with f.
func (f Frame) Clone() Frame {
	return Frame{
		ID:       f.ID,
		Config:   f.Config.Clone(),
		Location: f.Location,
	}
}

// CacheEntry records what was found the first time an application key was loaded.
type CacheEntry struct {
	ID       ProjectID
	Location string
}

// Declaration is what a project definition file declared when evaluated.
type Declaration struct {
	ID       ProjectID
	Config   ConfigMap
	Location string
}
