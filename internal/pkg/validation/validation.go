package validation

import (
	"regexp"
)

// emailRe matches the basic local@domain.tld shape: /^[^\s@]+@[^\s@]+\.[^\s@]+$/
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// MinPasswordLength is the only password rule: at least 6 characters.
const MinPasswordLength = 6

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
