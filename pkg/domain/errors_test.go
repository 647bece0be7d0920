package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectionKinds(t *testing.T) {
	tests := []struct {
		name   string
		kind   error
		status int
	}{
		{"unauthorized", ErrUnauthorized, http.StatusForbidden},
		{"invalid request", ErrInvalidRequest, http.StatusForbidden},
		{"limit exceeded", ErrLimitExceeded, http.StatusForbidden},
		{"conflict", ErrConflict, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusForbidden},
		{"capacity exceeded", ErrCapacityExceeded, http.StatusConflict},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Reject(tt.kind, "boom")
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, "boom", err.Error())
			assert.Equal(t, tt.status, err.Status())
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("db down")))

	wrapped := fmt.Errorf("create account: %w", Reject(ErrCapacityExceeded, "full"))
	assert.Equal(t, http.StatusConflict, StatusCode(wrapped))
}
