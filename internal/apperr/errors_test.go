package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"parse", NewParseError("1.5", "bad format"), ErrParse},
		{"not found", NewNotFound("account", "abc"), ErrNotFound},
		{"validation", NewValidation("value", "must be positive"), ErrValidation},
		{"wrapped", fmt.Errorf("create account: %w", NewValidation("name", "empty")), ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
		})
	}

	assert.NotErrorIs(t, NewNotFound("account", "x"), ErrValidation)
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("account", "abc")
	assert.Equal(t, "account 'abc' not found", err.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(fmt.Errorf("query: %w", err), &nf))
	assert.Equal(t, "abc", nf.ID)
}

func TestFieldErrors(t *testing.T) {
	err := errors.Join(
		NewValidation("name", "can't be empty"),
		fmt.Errorf("wrapped: %w", NewValidation("value", "must be positive")),
		errors.New("unrelated"),
	)

	fields := FieldErrors(err)
	if assert.Len(t, fields, 2) {
		assert.Equal(t, "name", fields[0].Field)
		assert.Equal(t, "value", fields[1].Field)
	}

	assert.Empty(t, FieldErrors(nil))
}
