package xapi

import (
	"errors"
	"fmt"
	"testing"
)

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		reason string // "" means pass-through
	}{
		{"success", 200, ""},
		{"bad request", 400, "bad request"},
		{"unauthorized", 401, "unauthorized"},
		{"forbidden", 403, "forbidden"},
		{"not found", 404, "not found"},
		{"request timeout", 408, "request timeout"},
		{"rate limited", 429, "too many requests"},
		{"server error", 500, "internal server error"},
		{"bad gateway", 502, "bad gateway"},
		{"unavailable", 503, "service unavailable"},
		{"teapot is unknown", 418, "unexpected status"},
		{"unknown 4xx", 451, "unexpected status"},
		{"unknown 5xx", 599, "unexpected status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(&Response{Status: tt.status, Body: []byte(`{}`)})
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("checkStatus(%d) = %v, want nil", tt.status, err)
				}
				return
			}
			se, ok := AsStatusError(err)
			if !ok {
				t.Fatalf("checkStatus(%d) = %v, want *StatusError", tt.status, err)
			}
			if se.Code != tt.status {
				t.Fatalf("code = %d, want %d", se.Code, tt.status)
			}
			if se.Reason != tt.reason {
				t.Fatalf("reason = %q, want %q", se.Reason, tt.reason)
			}
		})
	}
}

func TestStatusErrorCarriesRawCode(t *testing.T) {
	err := checkStatus(&Response{Status: 418})
	if want := "unexpected status (HTTP 418)"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := fmt.Errorf("TweetDetail: %w", err)
	se, ok := AsStatusError(wrapped)
	if !ok || se.Code != 418 {
		t.Fatalf("expected wrapped StatusError with code 418, got %v", wrapped)
	}
}

func TestAsStatusErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := AsStatusError(errors.New("dial tcp: timeout")); ok {
		t.Fatal("plain errors must not classify as StatusError")
	}
}
