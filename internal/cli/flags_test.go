package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gittyup/gittyup/internal/errors"
)

func TestIsValidOutputFormat(t *testing.T) {
	assert.True(t, IsValidOutputFormat("text"))
	assert.True(t, IsValidOutputFormat("json"))
	assert.False(t, IsValidOutputFormat("yaml"))
	assert.False(t, IsValidOutputFormat(""))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic error", err: stderrors.New("boom"), want: ExitError},
		{name: "failed operations", err: errors.ErrOperationsFailed, want: ExitError},
		{name: "invalid output format", err: errors.ErrInvalidOutputFormat, want: ExitInvalidInput},
		{name: "invalid operation", err: errors.ErrInvalidOperation, want: ExitInvalidInput},
		{name: "invalid path", err: errors.ErrInvalidPath, want: ExitInvalidInput},
		{name: "invalid config", err: errors.ErrConfigInvalid, want: ExitInvalidInput},
		{
			name: "wrapped sentinel",
			err:  errors.Wrap(errors.ErrInvalidPath, "scan failed"),
			want: ExitInvalidInput,
		},
		{name: "cobra unknown flag", err: stderrors.New("unknown flag: --bogus"), want: ExitInvalidInput},
		{name: "cobra unknown command", err: stderrors.New(`unknown command "frobnicate"`), want: ExitInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeForError(tt.err))
		})
	}
}
