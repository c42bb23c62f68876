package auth

import (
	"regexp"
	"strings"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError reports a problem with one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateEmail checks that email, trimmed, looks like an address.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "enter an email"}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks the password length.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "enter a password"}
	}
	if len([]rune(password)) < MinPasswordLen {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// ValidatePasswordConfirm checks that confirm repeats password.
func ValidatePasswordConfirm(password, confirm string) error {
	if confirm == "" {
		return &ValidationError{Field: "confirm", Message: "confirm the password"}
	}
	if password != confirm {
		return &ValidationError{Field: "confirm", Message: "passwords do not match"}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
