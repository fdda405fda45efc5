package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		want       ErrorKind
	}{
		{400, KindInvalidData},
		{401, KindSessionExpired},
		{403, KindForbidden},
		{500, KindServerError},
		// 映射表外的状态码一律归入 generic
		{402, KindGeneric},
		{404, KindGeneric},
		{422, KindGeneric},
		{502, KindGeneric},
		{503, KindGeneric},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStatus(tt.statusCode), "status %d", tt.statusCode)
	}
}

func TestAPIError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "invalid data with detail",
			err:  &APIError{StatusCode: 400, Kind: KindInvalidData, Detail: "glucos_value required"},
			want: "Invalid data: glucos_value required",
		},
		{
			name: "invalid data without detail",
			err:  &APIError{StatusCode: 400, Kind: KindInvalidData},
			want: "Invalid data: Failed to save glucose test results",
		},
		{
			name: "session expired ignores detail",
			err:  &APIError{StatusCode: 401, Kind: KindSessionExpired, Detail: "token invalid"},
			want: "Session expired. Please log in again.",
		},
		{
			name: "forbidden",
			err:  &APIError{StatusCode: 403, Kind: KindForbidden},
			want: "You are not authorized to perform this action.",
		},
		{
			name: "server error with detail",
			err:  &APIError{StatusCode: 500, Kind: KindServerError, Detail: "db down"},
			want: "Server error: db down",
		},
		{
			name: "generic with detail",
			err:  &APIError{StatusCode: 502, Kind: KindGeneric, Detail: "bad gateway"},
			want: "bad gateway",
		},
		{
			name: "generic without detail",
			err:  &APIError{StatusCode: 502, Kind: KindGeneric},
			want: "Failed to save glucose test results",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.UserMessage())
		})
	}
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"bad value"}`, "bad value"},
		{"error field", `{"error":"missing unit"}`, "missing unit"},
		{"nested data error", `{"data":{"error":"duplicate entry"}}`, "duplicate entry"},
		{"message wins over error", `{"message":"m","error":"e"}`, "m"},
		{"empty body", ``, ""},
		{"non json body", `<html>502</html>`, ""},
		{"no known fields", `{"status":"Failed"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractDetail([]byte(tt.body)))
		})
	}
}
