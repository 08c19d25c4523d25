package errors

import (
	"errors"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidDesign, "component %q has no pins", "led1")

	if err.Code != ErrCodeInvalidDesign {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDesign)
	}
	if err.Message != `component "led1" has no pins` {
		t.Errorf("Message = %q", err.Message)
	}
	if got, want := err.Error(), `INVALID_DESIGN: component "led1" has no pins`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "call model API")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want the original cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through the wrapper")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidPrompt, "empty prompt"), ErrCodeInvalidPrompt, true},
		{"different code", New(ErrCodeInvalidPrompt, "empty prompt"), ErrCodeTimeout, false},
		{"wrapped cause keeps outer code", Wrap(ErrCodeStore, New(ErrCodeDesignNotFound, "inner"), "save"), ErrCodeStore, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %v) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeBadResponse, "no candidates")); got != ErrCodeBadResponse {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeBadResponse)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	// Structured errors surface the message without the code prefix.
	err := New(ErrCodeNoAPIKey, "no API key configured")
	if got := UserMessage(err); got != "no API key configured" {
		t.Errorf("UserMessage = %q", got)
	}

	// Plain errors pass through untouched.
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	withRetry := &RateLimitedError{RetryAfter: 60}
	if got := withRetry.Error(); got != "rate limited: retry after 60 seconds" {
		t.Errorf("Error() = %q", got)
	}

	bare := &RateLimitedError{}
	if got := bare.Error(); got != "rate limited" {
		t.Errorf("Error() = %q", got)
	}
	if bare.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %v, want %v", bare.Code(), ErrCodeRateLimited)
	}
}
