package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateProject is returned when a project already on the stack is pushed
	// again from a different definition file.
	ErrDuplicateProject = zerr.New("project is already defined by another definition file")

	// ErrNoProject is returned when an operation requires an active project but the stack is empty.
	ErrNoProject = zerr.New("no project is loaded, run the command from a directory with a nest.star file")

	// ErrMissingAppName is returned when an application path is requested for a configuration
	// without an application name.
	ErrMissingAppName = zerr.New("application name is missing, declare one with app = \"name\" in nest.star")

	// ErrDefinitionEvalFailed is returned when a project definition file cannot be evaluated.
	ErrDefinitionEvalFailed = zerr.New("failed to evaluate project definition")

	// ErrAlreadyDeclared is returned when a definition file declares more than one project.
	ErrAlreadyDeclared = zerr.New("project already declared in this definition file")

	// ErrInvalidDeclaration is returned when a project declaration is malformed.
	ErrInvalidDeclaration = zerr.New("invalid project declaration")

	// ErrBuildStructureFailed is returned when the build directory layout cannot be created.
	ErrBuildStructureFailed = zerr.New("failed to prepare build structure")

	// ErrWorkingDirFailed is returned when the working directory cannot be read or changed.
	ErrWorkingDirFailed = zerr.New("failed to change working directory")

	// ErrInvalidSettings is returned when the tool settings fail validation.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrNotUmbrella is returned when an umbrella-only operation runs outside an umbrella project.
	ErrNotUmbrella = zerr.New("current project is not an umbrella project")

	// ErrUnknownFormat is returned when an output format is not supported.
	ErrUnknownFormat = zerr.New("unknown output format, use text or yaml")
)

// WithCause returns an error that matches sentinel with errors.Is and unwraps to err.
// It renders as "sentinel: err", like zerr.Wrap, and reports the sentinel text as its
// own message so the logger shows err as the cause. WithCause returns nil when err is nil.
func WithCause(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return &causedError{sentinel: sentinel, cause: err}
}

type causedError struct {
	sentinel error
	cause    error
}

func (e *causedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

// Message returns the sentinel text without the cause.
func (e *causedError) Message() string {
	return e.sentinel.Error()
}

func (e *causedError) Unwrap() error {
	return e.cause
}

func (e *causedError) Is(target error) bool {
	return target == e.sentinel
}
