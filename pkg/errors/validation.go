package errors

import (
	"strings"
	"unicode"
)

// maxNodeIDLen bounds node identifiers so labels stay drawable.
const maxNodeIDLen = 256

// ValidateNodeID checks that a node identifier is usable as a quiver vertex.
//
// Rules:
//   - Not empty
//   - At most 256 bytes
//   - No control characters (they break both the terminal canvas and the
//     Quiver( ... ) text form)
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLen {
		return New(ErrCodeInvalidInput, "node id too long (max %d characters)", maxNodeIDLen)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id %q contains control characters", id)
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path for quiver and config files.
//
// Validation rules:
//   - Path cannot be empty or whitespace
//   - Maximum length of 500 characters
//   - No null bytes
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null byte")
	}
	return nil
}
