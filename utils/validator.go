// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var netIDRegex = regexp.MustCompile(`^[a-z]{2,3}[0-9]{6}$`)

// ValidateNetID checks if a net id looks like a university login (letters
// followed by six digits).
func ValidateNetID(netID string) bool {
	return netIDRegex.MatchString(netID)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
