package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/nest/internal/adapters/logger"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		verbose    bool
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("some message") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("some warning") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug hidden by default",
			log:        func(l *logger.Logger) { l.Debug("project.load (1ms)") },
			goldenName: "debug_hidden",
		},
		{
			name:       "debug in verbose mode",
			verbose:    true,
			log:        func(l *logger.Logger) { l.Debug("project.load (1ms)") },
			goldenName: "debug_verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.SetVerbose(tt.verbose)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "zerr chain with metadata",
			err: zerr.With(
				zerr.Wrap(domain.ErrDuplicateProject, "failed to push project context"),
				"project", "A",
			),
			goldenName: "error_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("loaded")
	lg.Error(zerr.With(zerr.Wrap(domain.ErrNoProject, "cannot show configuration"), "dir", "/tmp"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"loaded"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"dir":"/tmp"`)
	assert.Contains(t, out, `"error":"cannot show configuration: no project is loaded`)
}

func TestLogger_SetJSON_PreservesOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.SetJSON(false)

	lg.Info("back to pretty")
	assert.Equal(t, "back to pretty\n", buf.String())
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(nil)
	lg.SetVerbose(false)
}
