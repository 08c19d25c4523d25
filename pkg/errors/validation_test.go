package errors

import (
	"strings"
	"testing"
)

func TestValidateDesignName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "blinky", false},
		{"with dash and digits", "traffic-light-v2", false},
		{"with spaces", "my first circuit", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"slash", "designs/blinky", true},
		{"backslash", "designs\\blinky", true},
		{"control characters", "bad\x01name", true},
		{"too long", strings.Repeat("a", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDesignName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDesignName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDesign) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidDesign)
			}
		})
	}
}

func TestValidatePrompt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "an LED on pin 13", false},
		{"empty", "", true},
		{"whitespace only", "   \n\t", true},
		{"null byte", "led\x00", true},
		{"too long", strings.Repeat("x", 8193), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrompt error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/api", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no scheme", "example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRenderFormat(t *testing.T) {
	for _, format := range []string{"svg", "png", "dot"} {
		if err := ValidateRenderFormat(format); err != nil {
			t.Errorf("ValidateRenderFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := ValidateRenderFormat("pdf"); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("pdf: error = %v, want INVALID_FORMAT", err)
	}
}
