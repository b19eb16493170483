package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ApiError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ApiError{Stage: STAGE_REQUEST})
	assert.True(t, errors.Is(err, &ApiError{}))
	assert.False(t, errors.Is(fmt.Errorf("plain"), &ApiError{}))
}

func Test_ApiError_Error(t *testing.T) {
	withMessage := &ApiError{
		Stage:          STAGE_AFTER_REQUEST,
		Type:           TYPE_HTTP_STATUS,
		HttpStatusCode: 422,
		Message:        "Email is required",
	}
	assert.Equal(t, "Email is required", withMessage.Error())

	withSource := &ApiError{
		Stage:     STAGE_REQUEST,
		Type:      TYPE_IO,
		SourceErr: fmt.Errorf("connection reset"),
	}
	assert.Contains(t, withSource.Error(), "connection reset")
	assert.Contains(t, withSource.Error(), STAGE_REQUEST)

	bare := &ApiError{Stage: STAGE_AFTER_REQUEST, Type: TYPE_HTTP_STATUS, HttpStatusCode: 500}
	assert.Contains(t, bare.Error(), "500")
}

func Test_ApiError_Retriable(t *testing.T) {
	testCases := []struct {
		name   string
		err    ApiError
		expect bool
	}{
		{"io during request", ApiError{Stage: STAGE_REQUEST, Type: TYPE_IO}, true},
		{"io reading body", ApiError{Stage: STAGE_AFTER_REQUEST, Type: TYPE_IO}, false},
		{"429", ApiError{Type: TYPE_HTTP_STATUS, HttpStatusCode: http.StatusTooManyRequests}, true},
		{"500", ApiError{Type: TYPE_HTTP_STATUS, HttpStatusCode: 500}, true},
		{"503", ApiError{Type: TYPE_HTTP_STATUS, HttpStatusCode: 503}, true},
		{"422", ApiError{Type: TYPE_HTTP_STATUS, HttpStatusCode: 422}, false},
		{"404", ApiError{Type: TYPE_HTTP_STATUS, HttpStatusCode: 404}, false},
		{"json", ApiError{Type: TYPE_JSON_PARSE}, false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Retriable())
		})
	}
}

func Test_ValidationError(t *testing.T) {
	err := Invalid("email", "Invalid email format: %s", "nope")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Invalid email format: nope", err.Error())

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email", vErr.Field)
}

func Test_ConfigError(t *testing.T) {
	err := &ConfigError{Setting: "DRIP_API_KEY"}
	assert.Equal(t, "configuration error: DRIP_API_KEY is required", err.Error())
}

func Test_UnknownOperation(t *testing.T) {
	err := UnknownOperation("nope")
	assert.True(t, errors.Is(err, ErrUnknownOperation))
	assert.Contains(t, err.Error(), `"nope"`)
}
