package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
		msg  string
	}{
		{"conflict", conflictError("email already in use"), KindConflict, "email already in use"},
		{"not found", notFoundError("invalid verification token"), KindNotFound, "invalid verification token"},
		{"invalid", invalidError("verification token has expired"), KindInvalid, "verification token has expired"},
		{"internal", internalError(errors.New("boom")), KindInternal, internalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestKindOfSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while registering: %w", conflictError("email already in use"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := internalError(cause)
	assert.ErrorIs(t, err, cause)
	// the cause never leaks into the caller-visible message
	assert.NotContains(t, err.Error(), "connection refused")
}
