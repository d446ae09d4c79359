package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewTargetNotFoundError().StatusCode)
	assert.Equal(t, http.StatusBadRequest, NewEmptyCommentError().StatusCode)
	assert.Equal(t, http.StatusForbidden, NewCommentDeleteForbiddenError().StatusCode)
	assert.Equal(t, http.StatusUnauthorized, NewAuthenticationError("no token").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, NewDatabaseError("boom", nil).StatusCode)
}

func TestAsAppError_Wrapped(t *testing.T) {
	cause := NewTargetNotFoundError()
	wrapped := fmt.Errorf("loading target: %w", cause)

	appErr := AsAppError(wrapped)
	assert.NotNil(t, appErr)
	assert.Equal(t, ErrorTypeNotFound, appErr.Type)
	assert.True(t, IsNotFound(wrapped))
}

func TestAsAppError_PlainError(t *testing.T) {
	assert.Nil(t, AsAppError(errors.New("plain")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, GetStatusCode(errors.New("plain")))
}

func TestDatabaseErrorIsRetryable(t *testing.T) {
	assert.True(t, NewDatabaseError("boom", nil).Retryable)
	assert.False(t, NewTargetNotFoundError().Retryable)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseError("query failed", cause)
	assert.True(t, errors.Is(err, cause))
}
