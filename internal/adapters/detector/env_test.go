package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nest/internal/adapters/config"
	"go.trai.ch/nest/internal/adapters/detector"
	"go.trai.ch/nest/internal/core/domain"
)

func TestEnvironment(t *testing.T) {
	env := detector.NewEnvironment()
	assert.Equal(t, domain.DefaultEnv, env.Name())

	env.Set("test")
	assert.Equal(t, "test", env.Name())

	env.Set("")
	assert.Equal(t, domain.DefaultEnv, env.Name(), "empty name resets to the default")
}

func TestDetectLogFormat_CI(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true forces json", ciValue: "true"},
		{name: "CI=1 forces json", ciValue: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, config.LogFormatJSON, detector.DetectLogFormat())
		})
	}
}

func TestResolveLogFormat(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected string
		format       string
		expected     string
	}{
		{
			name:         "auto respects auto-detection (pretty)",
			autoDetected: config.LogFormatPretty,
			format:       config.LogFormatAuto,
			expected:     config.LogFormatPretty,
		},
		{
			name:         "auto respects auto-detection (json)",
			autoDetected: config.LogFormatJSON,
			format:       config.LogFormatAuto,
			expected:     config.LogFormatJSON,
		},
		{
			name:         "empty respects auto-detection",
			autoDetected: config.LogFormatJSON,
			format:       "",
			expected:     config.LogFormatJSON,
		},
		{
			name:         "pretty overrides auto-detection",
			autoDetected: config.LogFormatJSON,
			format:       config.LogFormatPretty,
			expected:     config.LogFormatPretty,
		},
		{
			name:         "json overrides auto-detection",
			autoDetected: config.LogFormatPretty,
			format:       config.LogFormatJSON,
			expected:     config.LogFormatJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveLogFormat(tt.autoDetected, tt.format))
		})
	}
}
