package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrSSH, "key generation failed", "Install OpenSSH")

	assert.Equal(t, ErrSSH, err.Code)
	assert.Equal(t, "key generation failed", err.Message)
	assert.Equal(t, "Install OpenSSH", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "message only",
			err:      New(ErrGit, "git not found", ""),
			contains: []string{"✗ git not found"},
		},
		{
			name:     "message with suggestion",
			err:      New(ErrNet, "download failed", "Check your network connection"),
			contains: []string{"✗ download failed", "Check your network connection"},
		},
		{
			name:     "wrapped cause included",
			err:      WrapWithCode(fmt.Errorf("connection refused"), ErrNet, "cannot reach host", "Check DNS"),
			contains: []string{"✗ cannot reach host", "connection refused", "Check DNS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := WrapWithCode(cause, ErrExec, "command failed", "")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestIsCode(t *testing.T) {
	err := New(ErrPkg, "no package manager found", "")

	assert.True(t, IsCode(err, ErrPkg))
	assert.False(t, IsCode(err, ErrSSH))
	assert.False(t, IsCode(nil, ErrPkg))
	assert.False(t, IsCode(stderrors.New("plain"), ErrPkg))

	// Wrapped structured errors are still found via errors.As
	wrapped := fmt.Errorf("context: %w", err)
	assert.True(t, IsCode(wrapped, ErrPkg))
}

func TestWrapDefaultsToExec(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), "something broke")
	assert.Equal(t, ErrExec, err.Code)
	assert.True(t, strings.Contains(err.Error(), "boom"))
}
