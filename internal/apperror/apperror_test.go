package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusBadRequest},
		{Unauthorized("no"), http.StatusUnauthorized},
		{NotFound("gone"), http.StatusNotFound},
		{RateLimited("slow down"), http.StatusTooManyRequests},
		{Unavailable("off"), http.StatusServiceUnavailable},
		{External("llm", errors.New("boom")), http.StatusBadGateway},
		{Internal("db", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestFrom_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := From(cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", err.ClientMessage())
}

func TestFrom_FindsWrappedError(t *testing.T) {
	notFound := NotFound("Application not found.")
	err := From(fmt.Errorf("update: %w", notFound))

	assert.Same(t, notFound, err)
	assert.True(t, IsType(fmt.Errorf("x: %w", notFound), TypeNotFound))
	assert.False(t, IsType(errors.New("plain"), TypeNotFound))
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, From(nil))
}
