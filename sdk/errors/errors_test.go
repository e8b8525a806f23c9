package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "factory API error (401): Unauthorized", ErrUnauthorized.Error())
	assert.Equal(t, "factory API error (400): bad - extra", NewAPIError(400, "bad", "extra").Error())
}

func TestAPIErrorMatchesByStatus(t *testing.T) {
	err := fmt.Errorf("listing tickets: %w", NewAPIError(http.StatusNotFound, "no such ticket", ""))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.True(t, IsAPIError(err))
	assert.False(t, IsNetworkError(err))
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Operation: "GET", URL: "http://localhost:7999/api/tickets", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNetworkError(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), "GET http://localhost:7999/api/tickets")
}
