package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ErrorMessageFromBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "error list",
			status: 422,
			body:   `{"errors":[{"message":"Email is required"}]}`,
			want:   "Email is required",
		},
		{
			name:   "error list with several entries",
			status: 422,
			body:   `{"errors":[{"code":"presence_error","attribute":"email","message":"Email is required"},{"message":"Tag is too long"}]}`,
			want:   "Email is required; Tag is too long",
		},
		{
			name:   "error list without messages",
			status: 422,
			body:   `{"errors":[{"code":"uniqueness_error","attribute":"email"},{"code":"not_found"}]}`,
			want:   "email: uniqueness_error; not_found",
		},
		{
			name:   "error map",
			status: 400,
			body:   `{"errors":{"email":["is invalid","is too long"],"base":"went wrong"}}`,
			want:   "base: went wrong; email: is invalid, is too long",
		},
		{
			name:   "top-level message",
			status: 401,
			body:   `{"message":"Authentication failed"}`,
			want:   "Authentication failed",
		},
		{
			name:   "top-level error",
			status: 404,
			body:   `{"error":"Not found"}`,
			want:   "Not found",
		},
		{
			name:   "empty body",
			status: 500,
			body:   ``,
			want:   "Drip API request failed with HTTP status 500",
		},
		{
			name:   "not json",
			status: 429,
			body:   `Too Many Requests`,
			want:   "Drip API request failed with HTTP status 429",
		},
		{
			name:   "empty error list",
			status: 422,
			body:   `{"errors":[]}`,
			want:   "Drip API request failed with HTTP status 422",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorMessageFromBody(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, got)
		})
	}
}
