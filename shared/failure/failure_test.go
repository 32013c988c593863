package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"venus/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{Code: http.StatusBadRequest, Message: "checkOut must be after checkIn"}

	assert.Equal(t, "checkOut must be after checkIn", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		message  string
		expected bool
	}{
		{"bad request", failure.BadRequest(errors.New("invalid body")), http.StatusBadRequest, "invalid body", true},
		{"bad request nil", failure.BadRequest(nil), 0, "", false},
		{"bad request from string", failure.BadRequestFromString("missing role"), http.StatusBadRequest, "missing role", true},
		{"unauthorized", failure.Unauthorized("invalid email or password"), http.StatusUnauthorized, "invalid email or password", true},
		{"internal", failure.InternalError(errors.New("store down")), http.StatusInternalServerError, "store down", true},
		{"internal nil", failure.InternalError(nil), 0, "", false},
		{"not found", failure.NotFound("room"), http.StatusNotFound, "room", true},
		{"conflict", failure.Conflict("email already registered"), http.StatusConflict, "email already registered", true},
		{"unprocessable", failure.Unprocessable("transition not allowed"), http.StatusUnprocessableEntity, "transition not allowed", true},
		{"forbidden", failure.Forbidden("not your hotel"), http.StatusForbidden, "not your hotel", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.expected {
				assert.Nil(t, tt.err)
				return
			}

			var f *failure.Failure
			assert.True(t, errors.As(tt.err, &f))
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestPredefinedFailures(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, failure.ForbiddenError.Code)
	assert.Equal(t, http.StatusForbidden, failure.ResourceRestrictedError.Code)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{"failure", &failure.Failure{Code: http.StatusBadRequest}, http.StatusBadRequest},
		{"wrapped failure", fmt.Errorf("saving room: %w", failure.NotFound("room")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}
