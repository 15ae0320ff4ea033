// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	concernNumberRegex = regexp.MustCompile(`^SC-[0-9A-Z]+-[0-9A-Z]{4}$`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsConcernNumber checks whether s has the public concern reference shape
// (SC-, base36 timestamp, 4-character base36 suffix, all upper case).
func IsConcernNumber(s string) bool {
	return concernNumberRegex.MatchString(s)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
