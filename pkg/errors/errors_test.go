package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("practitioner", nil), http.StatusNotFound},
		{BadRequest("bad", nil), http.StatusBadRequest},
		{Unauthorized(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Conflict("dup", nil), http.StatusConflict},
		{Internal("", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("handler: %w", Internal("failed to update availability", cause))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "failed to update availability", appErr.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrInternal))
	assert.False(t, Is(cause, ErrInternal))
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "practitioner not found", NotFound("practitioner", nil).Error())
}
