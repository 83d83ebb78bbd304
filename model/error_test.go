package model

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCodeFor(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, NoError},
		{"plain", errors.New("boom"), UnknownError},
		{"declined", errors.Wrap(ErrDeclined, "home"), UserCanceled},
		{"missing field", &MissingFieldError{Field: "icon"}, InvalidInput},
		{"bad field", fmt.Errorf("cli: %w", &FieldError{Field: "weight", Reason: "too light"}), InvalidInput},
		{"not found", errors.Wrapf(ErrNotFound, "saved configuration %s", "x"), NotFound},
		{"explicit", NewExitError(NotFound, errors.New("gone")), NotFound},
		{"explicit wins", NewExitError(UserCanceled, &FieldError{Field: "icon"}), UserCanceled},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExitCodeFor(tc.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "Exit code 2", NewExitError(UserCanceled, nil).Error())
	assert.Equal(t, "gone", NewExitError(NotFound, errors.New("gone")).Error())
	assert.ErrorIs(t, NewExitError(NotFound, ErrNotFound), ErrNotFound)
}

func TestFieldErrorsAreInvalidConfig(t *testing.T) {
	missing := &MissingFieldError{Field: "icon"}
	assert.Equal(t, "missing required field: icon", missing.Error())
	assert.True(t, IsKind(errors.Wrap(missing, "save"), ErrInvalidConfig))

	bad := &FieldError{Field: "weight", Reason: "must be between 100 and 700"}
	assert.Equal(t, "invalid weight: must be between 100 and 700", bad.Error())
	assert.ErrorIs(t, bad, ErrInvalidConfig)
	assert.False(t, IsKind(bad, ErrNotFound))
}
