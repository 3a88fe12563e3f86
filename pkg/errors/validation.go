package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateEntityID validates an entity identifier supplied by a caller or a
// diagram document.
//
// Ids are opaque strings, but they end up in cache keys, DOT output and log
// lines, so the rules reject anything that would corrupt those:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 128 characters
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "entity id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "entity id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "entity id contains invalid control characters")
		}
	}

	return nil
}

// textureNameRegex matches texture file names such as "S_0.png".
var textureNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateTextureName validates a texture name for safety.
// It ensures the name is a simple basename without path components so a
// texture provider can join it with its root directory.
func ValidateTextureName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "texture name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "texture name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "texture name cannot contain path traversal sequences (..)")
	}

	if !textureNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid texture name: %q", name)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
