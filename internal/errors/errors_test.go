package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	plain := NotFound("user not found")
	assert.Equal(t, "user not found", plain.Error())
	assert.Nil(t, plain.Unwrap())

	cause := errors.New("boom")
	wrapped := Wrap(cause, ErrCodeInternal, "query failed")
	assert.Equal(t, "query failed: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_NilError(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestCodePredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"not found", NotFound("x"), IsNotFound},
		{"validation", Validation("x"), IsValidation},
		{"validation field", ValidationField("email", "x"), IsValidation},
		{"authentication", Authentication("x"), IsAuthentication},
		{"internal", Internal("x"), IsInternal},
		{"formatted not found", NotFoundf("user %q", "a@x.com"), IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.pred(tt.err))
			// A predicate for a different code must not match.
			if tt.pred(tt.err) && !IsTimeout(tt.err) {
				assert.False(t, IsTimeout(tt.err))
			}
		})
	}
}

func TestPredicates_MatchThroughWrapping(t *testing.T) {
	t.Parallel()
	inner := NotFound("user not found")
	outer := fmt.Errorf("find user: %w", inner)

	assert.True(t, IsNotFound(outer))
	assert.False(t, IsValidation(outer))
}

func TestGetCodeAndField(t *testing.T) {
	t.Parallel()

	err := ValidationField("password", "Missing password")
	assert.Equal(t, ErrCodeValidation, GetCode(err))
	assert.Equal(t, "password", GetField(err))
	assert.Equal(t, "Missing password", GetMessage(err))

	require.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, "", GetField(errors.New("plain")))
	assert.Equal(t, "", GetMessage(errors.New("plain")))
}
