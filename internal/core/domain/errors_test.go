package domain_test

import (
	"errors"
	iofs "io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/nest/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestWithCause(t *testing.T) {
	err := domain.WithCause(domain.ErrWorkingDirFailed, iofs.ErrNotExist)

	assert.ErrorIs(t, err, domain.ErrWorkingDirFailed)
	assert.ErrorIs(t, err, iofs.ErrNotExist)
	assert.NotErrorIs(t, err, domain.ErrBuildStructureFailed)
	assert.Equal(t, "failed to change working directory: file does not exist", err.Error())
}

func TestWithCause_Metadata(t *testing.T) {
	err := zerr.With(domain.WithCause(domain.ErrBuildStructureFailed, iofs.ErrPermission), "path", "/x")

	assert.ErrorIs(t, err, domain.ErrBuildStructureFailed)
	assert.ErrorIs(t, err, iofs.ErrPermission)

	var zErr *zerr.Error
	if assert.True(t, errors.As(err, &zErr)) {
		assert.Equal(t, "/x", zErr.Metadata()["path"])
	}
}

func TestWithCause_Nil(t *testing.T) {
	assert.NoError(t, domain.WithCause(domain.ErrWorkingDirFailed, nil))
}
