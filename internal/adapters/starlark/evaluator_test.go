package starlark_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nest/internal/adapters/starlark"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeDefinition(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.DefinitionFileName)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func newEvaluator(t *testing.T, ctrl *gomock.Controller, env string) *starlark.Evaluator {
	t.Helper()
	provider := mocks.NewMockEnvironmentProvider(ctrl)
	provider.EXPECT().Name().Return(env).AnyTimes()
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return starlark.NewEvaluator(provider, logger)
}

func TestEvaluator_Declares(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "dev")

	path := writeDefinition(t, `
project(
    "demo",
    app = "demo",
    version = "0.1.0",
    deps = ["jason", "plug"],
    start_permanent = False,
    aliases = {"t": "test"},
    env = {"test": {"deps_path": "test_deps"}},
    workers = 3,
    ratio = 1.5,
    apps_path = None,
    pair = ("a", "b"),
)
`)

	reg := mocks.NewMockRegistrar(ctrl)
	reg.EXPECT().Declare(domain.ProjectID("demo"), domain.ConfigMap{
		"app":             "demo",
		"version":         "0.1.0",
		"deps":            []any{"jason", "plug"},
		"start_permanent": false,
		"aliases":         map[string]any{"t": "test"},
		"env":             map[string]any{"test": map[string]any{"deps_path": "test_deps"}},
		"workers":         int64(3),
		"ratio":           1.5,
		"apps_path":       nil,
		"pair":            []any{"a", "b"},
	}).Return(nil)

	require.NoError(t, evaluator.Evaluate(context.Background(), path, reg))
}

func TestEvaluator_NoDeclaration(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "dev")

	path := writeDefinition(t, "x = 1\nprint(\"no project here\")\n")
	reg := mocks.NewMockRegistrar(ctrl)

	require.NoError(t, evaluator.Evaluate(context.Background(), path, reg))
}

func TestEvaluator_EnvironmentStruct(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "test")

	path := writeDefinition(t, `project("demo", deps_path = "deps_" + nest.env)`)

	reg := mocks.NewMockRegistrar(ctrl)
	reg.EXPECT().Declare(domain.ProjectID("demo"), domain.ConfigMap{"deps_path": "deps_test"}).Return(nil)

	require.NoError(t, evaluator.Evaluate(context.Background(), path, reg))
}

func TestEvaluator_RegistrarErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "dev")

	path := writeDefinition(t, "project(\"a\")\nproject(\"b\")\n")

	reg := mocks.NewMockRegistrar(ctrl)
	gomock.InOrder(
		reg.EXPECT().Declare(domain.ProjectID("a"), domain.ConfigMap{}).Return(nil),
		reg.EXPECT().Declare(domain.ProjectID("b"), domain.ConfigMap{}).
			Return(zerr.Wrap(domain.ErrAlreadyDeclared, "cannot declare a second project")),
	)

	err := evaluator.Evaluate(context.Background(), path, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDefinitionEvalFailed)
	assert.ErrorIs(t, err, domain.ErrAlreadyDeclared)
}

func TestEvaluator_Failures(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "syntax error",
			src:     "project(\"demo\"",
			wantErr: domain.ErrDefinitionEvalFailed,
		},
		{
			name:    "runtime error",
			src:     "x = 1 + \"a\"",
			wantErr: domain.ErrDefinitionEvalFailed,
		},
		{
			name:    "missing name",
			src:     "project(app = \"demo\")",
			wantErr: domain.ErrInvalidDeclaration,
		},
		{
			name:    "unsupported option value",
			src:     "project(\"demo\", check = len)",
			wantErr: domain.ErrInvalidDeclaration,
		},
		{
			name:    "non-string dict key",
			src:     "project(\"demo\", aliases = {1: \"one\"})",
			wantErr: domain.ErrInvalidDeclaration,
		},
		{
			name:    "load statement",
			src:     "load(\"other.star\", \"x\")",
			wantErr: domain.ErrDefinitionEvalFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			evaluator := newEvaluator(t, ctrl, "dev")
			path := writeDefinition(t, tt.src)

			err := evaluator.Evaluate(context.Background(), path, mocks.NewMockRegistrar(ctrl))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrDefinitionEvalFailed)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, path, zErr.Metadata()["path"])
		})
	}
}

func TestEvaluator_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "dev")

	err := evaluator.Evaluate(context.Background(), filepath.Join(t.TempDir(), "missing.star"), mocks.NewMockRegistrar(ctrl))
	assert.ErrorIs(t, err, domain.ErrDefinitionEvalFailed)
}

func TestEvaluator_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	evaluator := newEvaluator(t, ctrl, "dev")

	path := writeDefinition(t, `
def spin():
    for i in range(1000000000):
        pass

spin()
`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := evaluator.Evaluate(ctx, path, mocks.NewMockRegistrar(ctrl))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDefinitionEvalFailed)
	assert.ErrorContains(t, err, "context canceled")
}
