package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nest/internal/app"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// freshProvider builds the application graph without the process-wide node cache, so every
// test gets its own project state.
func freshProvider(t *testing.T, wrap func(*app.Components)) ComponentProvider {
	t.Helper()
	return func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx, graft.WithCache(graft.NewMemoryCache()))
		if err != nil {
			return nil, nil, err
		}
		if wrap != nil {
			wrap(c)
		}
		return c, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), freshProvider(t, nil))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "nest version")
}

// TestRun_Show verifies the configuration of the project in --dir is printed.
func TestRun_Show(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, domain.DefinitionFileName),
		[]byte(`project("demo", app = "demo")`),
		0o600,
	))

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"show", "--dir", dir, "--format", "yaml"}, stdout, new(bytes.Buffer), freshProvider(t, nil))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "project: demo")
	assert.Contains(t, stdout.String(), "app: demo")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the failure and returns 1.
func TestRun_ExecutionError(t *testing.T) {
	t.Chdir(t.TempDir())

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)

	var logged error
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) { logged = err })

	exitCode := run(context.Background(), []string{"show", "--format", "toml"}, new(bytes.Buffer), new(bytes.Buffer),
		freshProvider(t, func(c *app.Components) { c.Logger = logger }))

	assert.Equal(t, 1, exitCode)
	assert.ErrorIs(t, logged, domain.ErrUnknownFormat)
}
