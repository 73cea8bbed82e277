package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("analyze: %w", ExternalError("dify", cause))

	assert.True(t, HasCode(err, CodeExternalError))
	assert.False(t, HasCode(err, CodeInternalError))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, GetHTTPStatus(err))
	assert.Equal(t, "dify", AsAppError(err).Details["service"])
}

func TestAsAppErrorWrapsPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	got := AsAppError(plain)

	assert.Equal(t, CodeInternalError, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, plain)
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(plain))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[NOT_FOUND] demo not found", NotFound("demo").Error())
	assert.Equal(t, "[INVALID_INPUT] invalid input for 'budget': too small", InvalidInput("budget", "too small").Error())
	assert.Contains(t, Internal("", errors.New("x")).Error(), "internal server error: x")
	assert.Equal(t, http.StatusGatewayTimeout, Timeout("dify analyze").Status)
}
