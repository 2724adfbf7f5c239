package domain

import (
	"strings"

	dErrors "numerus/pkg/domain-errors"
)

// maxSystemIDLength bounds identifiers before they reach stores or cache keys.
const maxSystemIDLength = 64

// SystemID identifies a registered numerology rule-set (e.g. "pythagorean").
// Identifiers are lowercase ASCII letters, digits and underscores.
type SystemID string

// ParseSystemID trims, lowercases and validates a system identifier.
func ParseSystemID(s string) (SystemID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "system is required")
	}
	if len(s) > maxSystemIDLength {
		return "", dErrors.New(dErrors.CodeValidation, "system must be at most 64 characters")
	}
	for _, r := range s {
		if !isSystemIDRune(r) {
			return "", dErrors.New(dErrors.CodeValidation, "system may only contain a-z, 0-9 and '_'")
		}
	}
	return SystemID(s), nil
}

func isSystemIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

// String returns the identifier as stored.
func (id SystemID) String() string {
	return string(id)
}

// IsNil returns true if the identifier is empty.
func (id SystemID) IsNil() bool {
	return id == ""
}
