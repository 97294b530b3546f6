package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a canvas node identifier.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
//
// Uniqueness across a graph is checked separately by flow.Graph validation.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGraph, "node id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidGraph, "node id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidGraph, "node id contains invalid control characters")
		}
	}

	return nil
}

// ValidateDescription validates a free-text project description sent to the
// AI backend. It bounds the length and rejects control characters other than
// ordinary whitespace so prompts stay well-formed.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return New(ErrCodeInvalidInput, "description cannot be empty")
	}

	const maxDescriptionLength = 8192
	if len(desc) > maxDescriptionLength {
		return New(ErrCodeInvalidInput, "description too long (max %d characters)", maxDescriptionLength)
	}

	for _, r := range desc {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return New(ErrCodeInvalidInput, "description contains invalid control characters")
		}
	}

	return nil
}
