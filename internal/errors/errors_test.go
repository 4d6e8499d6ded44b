package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanErrorFormatting(t *testing.T) {
	err := NewScanErrorWithTarget(CodeTargetInvalid, "Invalid target specification", "bad..host")
	assert.Equal(t, "[TARGET_INVALID] Invalid target specification (target: bad..host)", err.Error())

	noTarget := NewScanError(CodeValidation, "Port set is empty")
	assert.Equal(t, "[VALIDATION] Port set is empty", noTarget.Error())
}

func TestScanErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := WrapScanError(CodeScanFailed, "probe setup failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestExportErrorFormatting(t *testing.T) {
	err := NewExportError(CodeFileWrite, "Failed to write export file", "/tmp/out.json")
	assert.Equal(t, "[FILE_WRITE] Failed to write export file (path: /tmp/out.json)", err.Error())
}

func TestConfigErrorFormatting(t *testing.T) {
	err := NewConfigFieldError(CodeValidation, "worker pool size must be positive", "scanning.worker_pool_size", 0)
	assert.Equal(t, "[VALIDATION] worker pool size must be positive (field: scanning.worker_pool_size)", err.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"scan error", NewScanError(CodeValidation, "x"), CodeValidation},
		{"export error", NewExportError(CodeFileWrite, "x", "p"), CodeFileWrite},
		{"config error", NewConfigError(CodeConfiguration, "x"), CodeConfiguration},
		{"plain error", stderrors.New("x"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
			assert.True(t, IsCode(tt.err, tt.want))
		})
	}
}

func TestIsConfigClass(t *testing.T) {
	assert.True(t, IsConfigClass(NewScanError(CodeValidation, "x")))
	assert.True(t, IsConfigClass(NewConfigError(CodeConfiguration, "x")))
	assert.True(t, IsConfigClass(ErrInvalidTarget("h")))
	assert.False(t, IsConfigClass(NewScanError(CodeTimeout, "x")))
	assert.False(t, IsConfigClass(stderrors.New("x")))
}

func TestCommonConstructors(t *testing.T) {
	assert.Equal(t, CodeValidation, ErrEmptyPortSet("h").Code)
	assert.Equal(t, "h", ErrEmptyPortSet("h").Target)

	portErr := ErrPortOutOfRange(65536)
	assert.Contains(t, portErr.Error(), "65536")

	cause := stderrors.New("disk full")
	exportErr := ErrExportWrite("/tmp/out.csv", cause)
	assert.Equal(t, CodeFileWrite, exportErr.Code)
	require.ErrorIs(t, exportErr, cause)
}
