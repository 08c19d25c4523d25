package errors

import (
	"strings"
	"unicode"
)

// ValidateDesignName validates a saved-design name for safety and
// correctness. It rejects names that could be used for path traversal when
// the file store maps names to filenames.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDesignName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDesign, "design name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidDesign, "design name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDesign, "design name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDesign, "design name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePrompt validates a generation prompt before it is sent anywhere.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return New(ErrCodeInvalidPrompt, "prompt cannot be empty")
	}

	const maxPromptLength = 8192
	if len(prompt) > maxPromptLength {
		return New(ErrCodeInvalidPrompt, "prompt too long (max %d characters)", maxPromptLength)
	}

	for _, r := range prompt {
		if r == '\x00' {
			return New(ErrCodeInvalidPrompt, "prompt contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateRenderFormat validates an export format name.
func ValidateRenderFormat(format string) error {
	switch format {
	case "svg", "png", "dot":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unsupported render format: %q (want svg, png, or dot)", format)
}
