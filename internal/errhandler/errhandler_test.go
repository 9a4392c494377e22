package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(terminal.InterruptErr))
	assert.True(t, IsCancelled(fmt.Errorf("input cancelled: %w", huh.ErrUserAborted)))
	assert.False(t, IsCancelled(errors.New("disk full")))
}

func TestHandleError(t *testing.T) {
	assert.Equal(t, 0, HandleError(nil))
	assert.Equal(t, 0, HandleError(huh.ErrUserAborted))
	assert.Equal(t, 1, HandleError(apperr.NewNotFound("account", "abc")))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error is capitalized",
			err:  errors.New("failed to open database"),
			want: "Failed to open database",
		},
		{
			name: "not found",
			err:  apperr.NewNotFound("account", "abc"),
			want: "Account 'abc' not found",
		},
		{
			name: "single field",
			err:  apperr.NewValidation("value", "must be greater than zero"),
			want: "Invalid input:\n  - value: must be greater than zero",
		},
		{
			name: "joined fields keep parse errors",
			err: errors.Join(
				apperr.NewValidation("name", "is required"),
				fmt.Errorf("amount: %w", apperr.NewParseError("x", "not a number")),
			),
			want: "Invalid input:\n  - name: is required\n  - amount: invalid input \"x\": not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}
