package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidConfig, "bucket is required")

	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidConfig, err.Code())
	assert.Equal(t, ClassificationPermanent, err.Classification())
	assert.Nil(t, err.Unwrap())
	assert.Nil(t, err.Context())
	assert.Equal(t, "[INVALID_CONFIGURATION] bucket is required", err.Error())

	err = Newf(CodeNetwork, "dial %s", "localhost:9000")
	assert.Equal(t, "dial localhost:9000", err.Message())
	assert.Equal(t, ClassificationRetryable, err.Classification())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, CodeUnknown},
		{"plain error", stderrors.New("boom"), CodeUnknown},
		{"platform error", New(CodeNotFound, "missing"), CodeNotFound},
		{"wrapped by fmt", fmt.Errorf("fetch: %w", New(CodeForbidden, "denied")), CodeForbidden},
		{"outermost wins", Wrap(New(CodeNetwork, "reset"), CodeTransferFailed, "download"), CodeTransferFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestIsRetryable_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", stderrors.New("boom"), false},
		{"network", New(CodeNetwork, "reset"), true},
		{"timeout", New(CodeTimeout, "slow"), true},
		{"unavailable", New(CodeUnavailable, "503"), true},
		{"not found", New(CodeNotFound, "missing"), false},
		{"content io", New(CodeContentIO, "short write"), false},
		{"reclassified", WithClassification(New(CodeContentIO, "short write"), ClassificationRetryable), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsAs(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := Wrap(sentinel, CodeContentIO, "copy failed")

	assert.True(t, Is(err, sentinel))

	var platformErr PlatformError
	require.True(t, As(fmt.Errorf("outer: %w", err), &platformErr))
	assert.Equal(t, CodeContentIO, platformErr.Code())
}
