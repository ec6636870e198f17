package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrSessionNotFound, "no such session")
	assert.Equal(t, "[SESSION_NOT_FOUND] no such session", err.Error())
	assert.Equal(t, ErrSessionNotFound, err.Code)
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("disk full")
	err := Wrap(inner, ErrBackupWriteFailed, "copying .zshrc")
	require.NotNil(t, err)
	assert.Equal(t, "[BACKUP_WRITE_FAILED] copying .zshrc: disk full", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "nothing %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrDocumentNotFound, "missing %s", "/home/u/.zshrc")
	wrapped := fmt.Errorf("module failed: %w", err)

	assert.True(t, IsErrorCode(wrapped, ErrDocumentNotFound))
	assert.False(t, IsErrorCode(wrapped, ErrAnchorNotFound))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrDocumentNotFound))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrAnchorNotFound, GetErrorCode(New(ErrAnchorNotFound, "x")))
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain")))
}

func TestErrorsIs(t *testing.T) {
	err := New(ErrBackupWriteFailed, "a")
	target := New(ErrBackupWriteFailed, "b")
	assert.True(t, stderrors.Is(err, target))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrFileWrite, "write failed").WithDetail("path", "/tmp/x")
	assert.Equal(t, "/tmp/x", err.Details["path"])
}
