package project_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nest/internal/core/domain"
	"go.uber.org/mock/gomock"
)

// setupUmbrella lays out an umbrella project:
//
//	root/nest.star        project("umbrella", apps_path = "apps")
//	root/apps/api         project("api", app = "api")
//	root/apps/web         project("web", app = "web", deps_path = "web_deps")
//	root/apps/docs        no definition file
//	root/apps/README.md
func setupUmbrella(t *testing.T, root string) {
	t.Helper()
	writeDefinition(t, root, `project("umbrella", apps_path = "apps")`)
	writeDefinition(t, filepath.Join(root, "apps", "api"), `project("api", app = "api")`)
	writeDefinition(t, filepath.Join(root, "apps", "web"), `project("web", app = "web", deps_path = "web_deps")`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "apps", "docs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "apps", "README.md"), []byte("# apps"), 0o600))
}

func TestService_Each(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, root := newService(t, ctrl, nil)
	setupUmbrella(t, root)

	type visit struct {
		id      domain.ProjectID
		wd      string
		build   string
		app     string
		deps    string
		lockDir string
	}
	var visits []visit

	err := svc.RunInProject(context.Background(), "umbrella", "", nil, func(ctx context.Context, id domain.ProjectID) error {
		assert.Equal(t, domain.ProjectID("umbrella"), id)
		assert.True(t, svc.IsUmbrella())

		return svc.Each(ctx, func(_ context.Context, id domain.ProjectID) error {
			wd, err := os.Getwd()
			require.NoError(t, err)
			build, err := svc.BuildPath()
			require.NoError(t, err)
			app, err := svc.AppPath()
			require.NoError(t, err)
			deps, err := svc.DepsPath()
			require.NoError(t, err)
			lockfile, _ := svc.CurrentConfig().String(domain.KeyLockfile)

			assert.Len(t, svc.Frames(), 2)
			visits = append(visits, visit{id: id, wd: wd, build: build, app: app, deps: deps, lockDir: filepath.Dir(lockfile)})
			return nil
		})
	})
	require.NoError(t, err)

	require.Len(t, visits, 2)
	assert.Equal(t, visit{
		id:      "api",
		wd:      filepath.Join(root, "apps", "api"),
		build:   filepath.Join(root, "_build"),
		app:     filepath.Join(root, "_build", "lib", "api"),
		deps:    filepath.Join(root, "deps"),
		lockDir: root,
	}, visits[0])
	assert.Equal(t, domain.ProjectID("web"), visits[1].id)
	assert.Equal(t, filepath.Join(root, "deps"), visits[1].deps, "umbrella deps path wins over the child's")

	assert.Empty(t, svc.Frames())
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, root, wd)
}

func TestService_Apps(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, root := newService(t, ctrl, nil)
	setupUmbrella(t, root)

	err := svc.RunInProject(context.Background(), "umbrella", "", nil, func(ctx context.Context, _ domain.ProjectID) error {
		apps, err := svc.Apps(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "apps", "api"),
			filepath.Join(root, "apps", "web"),
		}, apps)
		return nil
	})
	require.NoError(t, err)
}

func TestService_Each_NotUmbrella(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, root := newService(t, ctrl, nil)
	writeDefinition(t, root, `project("single", app = "single")`)

	err := svc.RunInProject(context.Background(), "single", "", nil, func(ctx context.Context, _ domain.ProjectID) error {
		assert.False(t, svc.IsUmbrella())
		return svc.Each(ctx, noop)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotUmbrella)
	assert.Empty(t, svc.Frames())
}

func TestService_Each_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, root := newService(t, ctrl, nil)
	setupUmbrella(t, root)

	boom := errors.New("boom")
	var visited []domain.ProjectID

	err := svc.RunInProject(context.Background(), "umbrella", "", nil, func(ctx context.Context, _ domain.ProjectID) error {
		return svc.Each(ctx, func(_ context.Context, id domain.ProjectID) error {
			visited = append(visited, id)
			return boom
		})
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "sub-application failed")
	assert.Equal(t, []domain.ProjectID{"api"}, visited)
	assert.Empty(t, svc.Frames())
}

func TestService_Each_ChildEvaluationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, root := newService(t, ctrl, nil)
	setupUmbrella(t, root)
	writeDefinition(t, filepath.Join(root, "apps", "api"), `project("api", app = `)

	err := svc.RunInProject(context.Background(), "umbrella", "", nil, func(ctx context.Context, _ domain.ProjectID) error {
		return svc.Each(ctx, noop)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDefinitionEvalFailed)
	assert.Empty(t, svc.Frames())

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, root, wd)
}
