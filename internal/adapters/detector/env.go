// Package detector provides detection of the build environment and of the log output format.
package detector

import (
	"os"
	"sync"

	"go.trai.ch/nest/internal/adapters/config"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports"
	"golang.org/x/term"
)

var _ ports.EnvironmentProvider = (*Environment)(nil)

// Environment holds the build environment name for the running command.
type Environment struct {
	mu   sync.RWMutex
	name string
}

// NewEnvironment creates an Environment set to domain.DefaultEnv.
func NewEnvironment() *Environment {
	return &Environment{name: domain.DefaultEnv}
}

// Name returns the current build environment name.
func (e *Environment) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

// Set changes the build environment name. An empty name resets it to domain.DefaultEnv.
func (e *Environment) Set(name string) {
	if name == "" {
		name = domain.DefaultEnv
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// DetectLogFormat returns the log format to use based on the environment.
// Pretty output is chosen only when stderr is a TTY and CI is not set.
func DetectLogFormat() string {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // Fd fits in int on supported platforms

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return config.LogFormatJSON
	}
	return config.LogFormatPretty
}

// ResolveLogFormat applies the configured format to auto-detection.
// format should be one of: "auto", "pretty", "json", or empty.
func ResolveLogFormat(autoDetected, format string) string {
	switch format {
	case config.LogFormatPretty, config.LogFormatJSON:
		return format
	default:
		return autoDetected
	}
}
