// Package ports defines the core interfaces for the application.
package ports

// EnvironmentProvider supplies the name of the current build environment
// (for example "dev", "test" or "prod").
//
// The name selects which environment-specific overrides of a project
// configuration apply.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentProvider interface {
	// Name returns the current build environment name.
	Name() string
}
