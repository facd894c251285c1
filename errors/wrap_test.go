package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("original error")
	err := Wrap(cause, CodeContentIO, "operation failed")

	require.NotNil(t, err)
	require.Equal(t, CodeContentIO, err.Code())
	require.Equal(t, "operation failed", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.Equal(t, "[CONTENT_IO] operation failed: original error", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "test"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "test %d", 1))
	require.Nil(t, WrapWithContext(nil, CodeNotFound, "test", nil))
}

func TestWrap_PreservesSentinels(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "a.txt", Err: fs.ErrNotExist}
	err := Wrap(pathErr, CodeNotFound, "missing")

	require.True(t, Is(err, fs.ErrNotExist))

	var target *fs.PathError
	require.True(t, As(err, &target))
	require.Equal(t, "a.txt", target.Path)
}

func TestWrap_PreservesClassification_Permanent(t *testing.T) {
	original := New(CodeNotFound, "not found")
	wrapped := Wrap(original, CodeTimeout, "timeout looking for object")
	require.False(t, wrapped.Classification().IsRetryable())
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrapf(cause, CodeNetwork, "failed to reach %s:%d", "localhost", 9000)

	require.Equal(t, "failed to reach localhost:9000", err.Message())
	require.True(t, err.Classification().IsRetryable())
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"bucket": "data"}
	err := WrapWithContext(stderrors.New("boom"), CodeTransferFailed, "failed", ctx)

	ctx["bucket"] = "mutated"
	require.Equal(t, "data", err.Context()["bucket"])

	got := err.Context()
	got["bucket"] = "mutated again"
	require.Equal(t, "data", err.Context()["bucket"])
}
