package errors

import (
	"strings"
	"unicode"
)

// ValidateDocumentID validates a document identifier for safety before it
// reaches the store or a file path. The rules are intentionally
// conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 128 characters
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "document id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "document id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "document id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "document id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output path for preview
// artifacts. It ensures reasonable length and rejects null bytes; beyond
// that the filesystem is the arbiter.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains invalid characters")
	}

	return nil
}
