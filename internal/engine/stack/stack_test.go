package stack_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nest/internal/adapters/config"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/nest/internal/core/ports/mocks"
	"go.trai.ch/nest/internal/engine/stack"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newStack(t *testing.T, env string) *stack.Stack {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockEnvironmentProvider(ctrl)
	provider.EXPECT().Name().Return(env).AnyTimes()
	return stack.New(config.NewMerger(), provider)
}

type failingMerger struct{}

func (failingMerger) Resolve(domain.ConfigMap, string, domain.ConfigMap) (domain.ConfigMap, error) {
	return nil, errors.New("merge failed")
}

func TestStack_PushPopPeek(t *testing.T) {
	s := newStack(t, "dev")

	_, ok := s.Peek()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Depth())

	frame, err := s.Push("a", domain.ConfigMap{domain.KeyApp: "a"}, "/a/nest.star", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectID("a"), frame.ID)
	assert.Equal(t, "/a/nest.star", frame.Location)
	assert.Equal(t, "a", frame.Config[domain.KeyApp])
	assert.Equal(t, "deps", frame.Config[domain.KeyDepsPath])

	_, err = s.Push("b", domain.ConfigMap{domain.KeyApp: "b"}, "/b/nest.star", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Depth())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, domain.ProjectID("b"), top.ID)
	assert.Equal(t, 2, s.Depth(), "peek must not mutate the stack")

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, domain.ProjectID("b"), popped.ID)

	popped, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, domain.ProjectID("a"), popped.ID)

	assert.Equal(t, 0, s.Depth())
}

func TestStack_PopEmpty(t *testing.T) {
	s := newStack(t, "dev")

	_, ok := s.Pop()
	assert.False(t, ok)
	_, ok = s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Depth())
}

func TestStack_DuplicateDetection(t *testing.T) {
	t.Run("same project from another location fails", func(t *testing.T) {
		s := newStack(t, "dev")

		_, err := s.Push("A", nil, "/x", nil)
		require.NoError(t, err)

		_, err = s.Push("A", nil, "/y", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateProject)
		assert.Equal(t, 1, s.Depth(), "failed push must not mutate the stack")

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		meta := zErr.Metadata()
		assert.Equal(t, "A", meta["project"])
		assert.Equal(t, "/x", meta["existing_location"])
		assert.Equal(t, "/y", meta["new_location"])
	})

	t.Run("same project from the same location succeeds", func(t *testing.T) {
		s := newStack(t, "dev")

		_, err := s.Push("A", nil, "/x", nil)
		require.NoError(t, err)
		_, err = s.Push("A", nil, "/x", nil)
		require.NoError(t, err)

		assert.Equal(t, 2, s.Depth())
	})

	t.Run("duplicate deeper in the stack is detected", func(t *testing.T) {
		s := newStack(t, "dev")

		_, err := s.Push("A", nil, "/x", nil)
		require.NoError(t, err)
		_, err = s.Push("B", nil, "/b", nil)
		require.NoError(t, err)

		_, err = s.Push("A", nil, "/y", nil)
		assert.ErrorIs(t, err, domain.ErrDuplicateProject)
	})

	t.Run("frames without a project coexist", func(t *testing.T) {
		s := newStack(t, "dev")

		_, err := s.Push(domain.NoProject, nil, domain.NoFile, nil)
		require.NoError(t, err)
		_, err = s.Push(domain.NoProject, nil, "/other", nil)
		require.NoError(t, err)

		assert.Equal(t, 2, s.Depth())
	})
}

func TestStack_PushResolvesConfiguration(t *testing.T) {
	declared := domain.ConfigMap{
		domain.KeyDepsPath:  "custom",
		domain.KeyBuildPath: "/declared/_build",
		domain.KeyEnv: map[string]any{
			"test": map[string]any{domain.KeyDepsPath: "test_deps"},
		},
	}

	t.Run("test environment", func(t *testing.T) {
		frame, err := newStack(t, "test").Push("A", declared, "/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "test_deps", frame.Config[domain.KeyDepsPath])
		assert.NotContains(t, frame.Config, domain.KeyBuildPath)
		assert.NotContains(t, frame.Config, domain.KeyEnv)
	})

	t.Run("dev environment", func(t *testing.T) {
		frame, err := newStack(t, "dev").Push("A", declared, "/x", nil)
		require.NoError(t, err)
		assert.Equal(t, "custom", frame.Config[domain.KeyDepsPath])
	})

	t.Run("override applies after stripping", func(t *testing.T) {
		override := domain.ConfigMap{domain.KeyBuildPath: "/parent/_build"}

		frame, err := newStack(t, "dev").Push("A", declared, "/x", override)
		require.NoError(t, err)
		assert.Equal(t, "/parent/_build", frame.Config[domain.KeyBuildPath])
	})
}

func TestStack_PushMergeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockEnvironmentProvider(ctrl)
	provider.EXPECT().Name().Return("dev")

	s := stack.New(failingMerger{}, provider)

	_, err := s.Push("A", nil, "/x", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "merge failed")
	assert.Equal(t, 0, s.Depth())
}

func TestStack_FramesAreImmutable(t *testing.T) {
	s := newStack(t, "dev")

	pushed, err := s.Push("A", domain.ConfigMap{domain.KeyDeps: []any{"x"}}, "/x", nil)
	require.NoError(t, err)
	pushed.Config[domain.KeyApp] = "mutated"

	peeked, ok := s.Peek()
	require.True(t, ok)
	assert.NotContains(t, peeked.Config, domain.KeyApp)

	peeked.Config[domain.KeyDeps].([]any)[0] = "mutated"

	frames := s.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, []any{"x"}, frames[0].Config[domain.KeyDeps])
}

func TestStack_Frames(t *testing.T) {
	s := newStack(t, "dev")

	_, err := s.Push("A", nil, "/a", nil)
	require.NoError(t, err)
	_, err = s.Push("B", nil, "/b", nil)
	require.NoError(t, err)

	frames := s.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, domain.ProjectID("A"), frames[0].ID)
	assert.Equal(t, domain.ProjectID("B"), frames[1].ID)
}

func TestStack_ConcurrentPushPop(t *testing.T) {
	s := newStack(t, "dev")

	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			_, err := s.Push("shared", nil, "/shared", nil)
			assert.NoError(t, err)
			_, ok := s.Pop()
			assert.True(t, ok)
		})
	}
	wg.Wait()

	assert.Equal(t, 0, s.Depth())
}
