package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MinPasswordLength = 6
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

// ValidateUsername checks the account name format.
// Rules: 3-20 characters, letters, numbers, underscores only, not starting with an underscore.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength {
		return &ValidationError{Field: "username", Message: "Username minimal 3 karakter"}
	}

	if len(username) > MaxUsernameLength {
		return &ValidationError{Field: "username", Message: "Username maksimal 20 karakter"}
	}

	if !usernameRegex.MatchString(username) {
		return &ValidationError{Field: "username", Message: "Username hanya boleh berisi huruf, angka, dan garis bawah"}
	}

	if !(unicode.IsLetter(rune(username[0])) || unicode.IsNumber(rune(username[0]))) {
		return &ValidationError{Field: "username", Message: "Username harus diawali huruf atau angka"}
	}

	return nil
}

// ValidatePassword only enforces the minimum length.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ValidationError{Field: "password", Message: "Password minimal 6 karakter"}
	}
	return nil
}

// NormalizeUsername converts username to lowercase for storage
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidationError names the offending field and a message fit for end users.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
